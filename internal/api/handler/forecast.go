package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/revenue-forecast-api/internal/config"
	"github.com/vfg2006/revenue-forecast-api/internal/domain"
	"github.com/vfg2006/revenue-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/revenue-forecast-api/pkg/apiErrors"
	"github.com/vfg2006/revenue-forecast-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Campo do formulário multipart que carrega a planilha
const uploadField = "file"

// forecastParams são os parâmetros de uma execução, validados antes da pipeline
type forecastParams struct {
	HorizonMonths    int  `json:"horizon_months" validate:"min=1,ltefield=MaxHorizonMonths"`
	MaxHorizonMonths int  `json:"-"`
	WithCommentary   bool `json:"commentary"`
}

func newValidator() *validator.Validate {
	v := validator.New()

	// Usa o nome do campo JSON nas mensagens de erro
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// forecastRequestParser lê o upload e os parâmetros de uma requisição de previsão
type forecastRequestParser struct {
	cfg      *config.Config
	validate *validator.Validate
}

func newForecastRequestParser(cfg *config.Config) forecastRequestParser {
	return forecastRequestParser{cfg: cfg, validate: newValidator()}
}

// parse devolve a requisição pronta para a pipeline. Em caso de erro a resposta
// já foi escrita e ok é falso. O chamador deve fechar o arquivo quando ok.
func (p forecastRequestParser) parse(w http.ResponseWriter, r *http.Request) (req forecasting.Request, file multipart.File, ok bool) {
	logger := log.ForContext(r.Context())

	if err := r.ParseMultipartForm(p.cfg.Upload.MaxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.WithField("limit_bytes", maxErr.Limit).Warn("forecast: upload acima do limite")
			apiErrors.WriteError(w, apiErrors.ErrPayloadTooLarge, "Arquivo acima do limite permitido", map[string]any{"limit_bytes": maxErr.Limit})
			return req, nil, false
		}

		logger.WithError(err).Warn("forecast: formulário multipart inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formulário multipart inválido", nil)
		return req, nil, false
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		logger.WithError(err).Warn("forecast: planilha não enviada")
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Envie a planilha no campo 'file'", nil)
		return req, nil, false
	}

	params := forecastParams{
		HorizonMonths:    p.cfg.Forecast.DefaultHorizonMonths,
		MaxHorizonMonths: p.cfg.Forecast.MaxHorizonMonths,
		WithCommentary:   true,
	}

	if raw := strings.TrimSpace(r.FormValue("horizon_months")); raw != "" {
		months, err := strconv.Atoi(raw)
		if err != nil {
			file.Close()
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "horizon_months deve ser um número inteiro", map[string]any{"horizon_months": raw})
			return req, nil, false
		}
		params.HorizonMonths = months
	}

	if raw := strings.TrimSpace(r.FormValue("commentary")); raw != "" {
		withCommentary, err := strconv.ParseBool(raw)
		if err != nil {
			file.Close()
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "commentary deve ser true ou false", map[string]any{"commentary": raw})
			return req, nil, false
		}
		params.WithCommentary = withCommentary
	}

	if err := p.validate.Struct(params); err != nil {
		file.Close()

		details := map[string]string{}
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fe := range validationErrors {
				details[fe.Field()] = fe.Tag()
			}
		}

		logger.WithField("forecast_horizon_months", params.HorizonMonths).Warn("forecast: parâmetros inválidos")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "horizon_months deve estar entre 1 e "+strconv.Itoa(params.MaxHorizonMonths), details)
		return req, nil, false
	}

	req = forecasting.Request{
		Filename:       header.Filename,
		File:           file,
		HorizonMonths:  params.HorizonMonths,
		WithCommentary: params.WithCommentary,
	}

	return req, file, true
}

// writeForecastError traduz os erros da pipeline para a resposta da API
func writeForecastError(w http.ResponseWriter, err error) {
	var details any
	var forecastErr *domain.ForecastError
	if errors.As(err, &forecastErr) && forecastErr.Details != "" {
		details = forecastErr.Details
	}

	switch {
	case errors.Is(err, forecasting.ErrInvalidHorizon):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrSchema):
		apiErrors.WriteError(w, apiErrors.ErrSchema, "A planilha não possui as colunas obrigatórias", details)
	case errors.Is(err, domain.ErrParse):
		apiErrors.WriteError(w, apiErrors.ErrParse, "Não foi possível interpretar a planilha", details)
	case errors.Is(err, domain.ErrFit):
		apiErrors.WriteError(w, apiErrors.ErrFit, "Não foi possível treinar o modelo de previsão", details)
	case errors.Is(err, domain.ErrUpstream):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Serviço de comentário indisponível", details)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		apiErrors.WriteError(w, apiErrors.ErrCanceled, "Execução da previsão cancelada", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao executar a previsão", nil)
	}
}

// CreateForecast executa a pipeline completa para a planilha enviada e
// devolve o relatório em JSON
func CreateForecast(service forecasting.ForecastService, cfg *config.Config) http.Handler {
	parser := newForecastRequestParser(cfg)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		req, file, ok := parser.parse(w, r)
		if !ok {
			return
		}
		defer file.Close()

		logger.WithFields(log.Fields{
			"forecast_file":           req.Filename,
			"forecast_horizon_months": req.HorizonMonths,
		}).Info("forecast: upload recebido")

		report, err := service.Run(r.Context(), req)
		if err != nil {
			// Falha no comentário não esconde a previsão já calculada
			if report == nil || !errors.Is(err, domain.ErrUpstream) {
				logger.WithError(err).Warn("forecast: execução falhou")
				writeForecastError(w, err)
				return
			}
			logger.WithError(err).Warn("forecast: relatório devolvido sem comentário")
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("forecast: erro ao enviar resposta")
		}
	})
}
