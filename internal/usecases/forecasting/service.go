// Package forecasting orquestra a pipeline de previsão de uma única sessão:
// carga da planilha, treino do modelo, resumo trimestral e comentário.
package forecasting

import (
	"context"
	"io"
	"time"

	"github.com/vfg2006/revenue-forecast-api/internal/config"
	"github.com/vfg2006/revenue-forecast-api/internal/domain"
	"github.com/vfg2006/revenue-forecast-api/internal/usecases/summarizing"
	"github.com/vfg2006/revenue-forecast-api/pkg/log"
	"github.com/vfg2006/revenue-forecast-api/pkg/metrics"
	"github.com/vfg2006/revenue-forecast-api/pkg/utils"
)

// Etapas da pipeline usadas em logs e métricas
const (
	StageLoad      = "load"
	StageForecast  = "forecast"
	StageSummarize = "summarize"
	StageNarrate   = "narrate"
)

// Request representa uma execução disparada por um upload
type Request struct {
	Filename       string
	File           io.Reader
	HorizonMonths  int
	WithCommentary bool
}

type Service struct {
	cfg        config.Forecast
	narrative  config.Narrative
	loader     SeriesLoader
	forecaster Forecaster
	summarizer summarizing.Summarizer
	narrator   Narrator
	now        func() time.Time
}

// NewService cria o serviço de previsão. narrator pode ser nil quando o
// comentário estiver desabilitado (ex: CLI sem chave de API).
func NewService(
	cfg *config.Config,
	loader SeriesLoader,
	forecaster Forecaster,
	summarizer summarizing.Summarizer,
	narrator Narrator,
) ForecastService {
	return &Service{
		cfg:        cfg.Forecast,
		narrative:  cfg.Narrative,
		loader:     loader,
		forecaster: forecaster,
		summarizer: summarizer,
		narrator:   narrator,
		now:        time.Now,
	}
}

// Run executa a pipeline de forma síncrona. O primeiro erro interrompe as etapas
// seguintes. Falhas de carga ou de treino não devolvem relatório; uma falha do
// comentário devolve o relatório já calculado junto com o erro.
func (s *Service) Run(ctx context.Context, req Request) (report *domain.ForecastReport, err error) {
	defer func() { metrics.ObserveRun(err) }()

	if req.HorizonMonths < 1 || req.HorizonMonths > s.cfg.MaxHorizonMonths {
		return nil, &HorizonError{Months: req.HorizonMonths, Max: s.cfg.MaxHorizonMonths}
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithField("run_id", runID)
	horizonDays := req.HorizonMonths * s.cfg.DaysPerMonth

	logger.WithFields(log.Fields{
		"forecast_file":           req.Filename,
		"forecast_horizon_months": req.HorizonMonths,
		"forecast_horizon_days":   horizonDays,
	}).Info("forecast: iniciando execução")

	start := time.Now()
	series, err := s.loader.Load(ctx, req.Filename, req.File)
	metrics.ObserveStage(StageLoad, start, err)
	if err != nil {
		logger.WithError(err).WithField("stage", StageLoad).Warn("forecast: erro ao carregar a planilha")
		return nil, err
	}

	start = time.Now()
	forecast, err := s.forecaster.Forecast(ctx, series, horizonDays)
	metrics.ObserveStage(StageForecast, start, err)
	if err != nil {
		logger.WithError(err).WithField("stage", StageForecast).Warn("forecast: erro ao treinar o modelo")
		return nil, err
	}

	start = time.Now()
	buckets, summary := s.summarizer.Summarize(series, forecast.Points)
	metrics.ObserveStage(StageSummarize, start, nil)

	report = &domain.ForecastReport{
		ID:            runID,
		Filename:      req.Filename,
		HorizonMonths: req.HorizonMonths,
		HorizonDays:   horizonDays,
		Cutoff:        series.Cutoff(),
		Observations:  series,
		Forecast:      forecast,
		Buckets:       buckets,
		Summary:       summary,
		GeneratedAt:   s.now().UTC(),
	}

	logger.WithFields(log.Fields{
		"forecast_points":   len(forecast.Points),
		"forecast_quarters": len(summary),
	}).Info("forecast: resumo trimestral calculado")

	if !req.WithCommentary || s.narrator == nil {
		return report, nil
	}

	start = time.Now()
	commentary, err := s.narrator.Commentary(ctx, series.Tail(s.narrative.RecentRecords))
	metrics.ObserveStage(StageNarrate, start, err)
	if err != nil {
		logger.WithError(err).WithField("stage", StageNarrate).Error("forecast: erro ao gerar comentário")
		report.CommentaryError = err.Error()
		return report, err
	}

	report.Commentary = commentary
	logger.Info("forecast: execução concluída")

	return report, nil
}
