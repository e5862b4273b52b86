package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	openaidomain "github.com/vfg2006/revenue-forecast-api/infrastructure/integrator/openai/domain"
	"github.com/vfg2006/revenue-forecast-api/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/revenue-forecast-api/internal/config"
	"github.com/vfg2006/revenue-forecast-api/internal/domain"
	"github.com/vfg2006/revenue-forecast-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NarrativeService gera o comentário em texto livre a partir dos registros recentes
type NarrativeService struct {
	cfg    config.Narrative
	Client openaiclient.Client
}

// New cria o serviço de narrativa. A chave da API é injetada pela configuração
// e validada aqui, antes de qualquer chamada.
func New(cfg config.Narrative, client openaiclient.Client) (*NarrativeService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.NewUpstreamError("chave da API do modelo de linguagem ausente", config.ErrMissingAPIKey)
	}

	return &NarrativeService{
		cfg:    cfg,
		Client: client,
	}, nil
}

func (s *NarrativeService) Commentary(ctx context.Context, recent domain.Series) (string, error) {
	logger := log.ForContext(ctx)

	payload, err := SerializeRecords(recent)
	if err != nil {
		return "", domain.NewUpstreamError("erro ao serializar os registros", err)
	}

	request := openaidomain.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openaidomain.ChatMessage{
			{Role: openaidomain.RoleSystem, Content: SystemPrompt},
			{Role: openaidomain.RoleUser, Content: fmt.Sprintf(CommentaryPromptTemplate, len(recent), payload)},
		},
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	response, err := s.Client.CreateChatCompletion(ctx, request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", domain.NewUpstreamError(fmt.Sprintf("tempo limite de %s excedido", s.cfg.Timeout), err)
		}

		var apiErr *openaidomain.APIError
		if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
			return "", domain.NewUpstreamError("chave da API inválida", err)
		}
		if errors.As(err, &apiErr) {
			return "", domain.NewUpstreamError(fmt.Sprintf("serviço respondeu com status %d", apiErr.StatusCode), err)
		}

		return "", domain.NewUpstreamError("serviço de narrativa indisponível", err)
	}

	if len(response.Choices) == 0 || strings.TrimSpace(response.Choices[0].Message.Content) == "" {
		return "", domain.NewUpstreamError("resposta sem conteúdo", nil)
	}

	logger.WithFields(log.Fields{
		"forecast_model":       response.Model,
		"forecast_tokens":      response.Usage.TotalTokens,
		"forecast_records":     len(recent),
		"forecast_duration_ms": time.Since(start).Milliseconds(),
	}).Debug("narrative: comentário gerado")

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// SerializeRecords converte as observações no array JSON enviado no prompt
func SerializeRecords(series domain.Series) (string, error) {
	records := make([]openaidomain.RevenueRecord, len(series))
	for i, obs := range series {
		records[i] = openaidomain.RevenueRecord{
			Date:    obs.Date.Format(time.DateOnly),
			Revenue: obs.Value,
		}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
