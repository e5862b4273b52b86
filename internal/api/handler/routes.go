package handler

import (
	"net/http"

	"github.com/vfg2006/revenue-forecast-api/internal/api/handler/router"
	"github.com/vfg2006/revenue-forecast-api/internal/config"
	"github.com/vfg2006/revenue-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/revenue-forecast-api/pkg/metrics"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Forecasts(service forecasting.ForecastService, cfg *config.Config) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/forecasts",
			Method:  http.MethodPost,
			Handler: CreateForecast(service, cfg),
		},
		{
			Path:    "/v1/forecasts/summary.xlsx",
			Method:  http.MethodPost,
			Handler: ExportSummary(service, cfg, SummaryXLSX),
		},
		{
			Path:    "/v1/forecasts/summary.pdf",
			Method:  http.MethodPost,
			Handler: ExportSummary(service, cfg, SummaryPDF),
		},
	}
}
