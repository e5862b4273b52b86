package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vfg2006/revenue-forecast-api/infrastructure/report"
	"github.com/vfg2006/revenue-forecast-api/internal/config"
	"github.com/vfg2006/revenue-forecast-api/internal/domain"
	"github.com/vfg2006/revenue-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/revenue-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/revenue-forecast-api/pkg/log"
)

// SummaryFormat descreve um formato de exportação da tabela trimestral
type SummaryFormat struct {
	Extension   string
	ContentType string
	Build       func(*domain.ForecastReport) ([]byte, error)
}

var (
	SummaryXLSX = SummaryFormat{
		Extension:   "xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Build:       report.BuildSummaryXLSX,
	}
	SummaryPDF = SummaryFormat{
		Extension:   "pdf",
		ContentType: "application/pdf",
		Build:       report.BuildSummaryPDF,
	}
)

// ExportSummary executa a previsão sem comentário e devolve apenas a tabela trimestral
func ExportSummary(service forecasting.ForecastService, cfg *config.Config, format SummaryFormat) http.Handler {
	parser := newForecastRequestParser(cfg)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context()).WithField("format", format.Extension)

		req, file, ok := parser.parse(w, r)
		if !ok {
			return
		}
		defer file.Close()

		req.WithCommentary = false

		forecastReport, err := service.Run(r.Context(), req)
		if err != nil {
			logger.WithError(err).Warn("export: execução falhou")
			writeForecastError(w, err)
			return
		}

		data, err := format.Build(forecastReport)
		if err != nil {
			logger.WithError(err).Error("export: erro ao gerar arquivo")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar o arquivo", nil)
			return
		}

		name := strings.TrimSuffix(req.Filename, pathExt(req.Filename))
		if name == "" {
			name = "forecast"
		}

		w.Header().Set("Content-Type", format.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"-summary."+format.Extension))
		if _, err := w.Write(data); err != nil {
			logger.WithError(err).Error("export: erro ao enviar arquivo")
		}
	})
}

func pathExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}
