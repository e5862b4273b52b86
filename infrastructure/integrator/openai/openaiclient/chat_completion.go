package openaiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	openaidomain "github.com/vfg2006/revenue-forecast-api/infrastructure/integrator/openai/domain"
)

// Limite de leitura do corpo de resposta (4 MiB)
const maxResponseBytes = 4 << 20

func (c *OpenAIClient) CreateChatCompletion(ctx context.Context, request openaidomain.ChatCompletionRequest) (*openaidomain.ChatCompletionResponse, error) {
	endpoint, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/chat/completions")

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar a requisição: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &openaidomain.APIError{StatusCode: resp.StatusCode}

		var errorResponse openaidomain.ErrorResponse
		if err := json.Unmarshal(data, &errorResponse); err == nil {
			apiErr.Details = errorResponse.Error
		}

		return nil, apiErr
	}

	var response openaidomain.ChatCompletionResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return &response, nil
}
