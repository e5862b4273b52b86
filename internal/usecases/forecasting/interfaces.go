package forecasting

import (
	"context"
	"io"

	"github.com/vfg2006/revenue-forecast-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// SeriesLoader converte o arquivo enviado na série canônica
type SeriesLoader interface {
	Load(ctx context.Context, filename string, r io.Reader) (domain.Series, error)
}

// Forecaster treina o modelo e devolve os pontos previstos (incluindo o período histórico)
type Forecaster interface {
	Forecast(ctx context.Context, series domain.Series, horizonDays int) (*domain.Forecast, error)
}

// Narrator gera o comentário sobre os registros mais recentes
type Narrator interface {
	Commentary(ctx context.Context, recent domain.Series) (string, error)
}

// ForecastService é a interface usada pela camada HTTP e pela CLI
type ForecastService interface {
	// Run executa upload -> carga -> previsão -> resumo trimestral -> comentário
	Run(ctx context.Context, req Request) (*domain.ForecastReport, error)
}
