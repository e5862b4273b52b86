package openaiclient

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	openaidomain "github.com/vfg2006/revenue-forecast-api/infrastructure/integrator/openai/domain"
	"github.com/vfg2006/revenue-forecast-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	CreateChatCompletion(ctx context.Context, request openaidomain.ChatCompletionRequest) (*openaidomain.ChatCompletionResponse, error)
}

type OpenAIClient struct {
	httpClient *http.Client
	config     config.Narrative
}

// NewClient cria o cliente HTTP da API de chat completion.
// O timeout do http.Client é um limite extra; o timeout por chamada vem do contexto.
func NewClient(cfg config.Narrative) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &OpenAIClient{
		httpClient: &http.Client{
			Timeout: timeout + 5*time.Second,
		},
		config: cfg,
	}
}
