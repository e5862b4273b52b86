package domain

import (
	"errors"
	"fmt"
)

// Erros da pipeline de previsão
var (
	// Colunas obrigatórias ausentes
	ErrSchema = errors.New("schema error")
	// Datas ou valores que não puderam ser interpretados
	ErrParse = errors.New("parse error")
	// Falha ao treinar o modelo (dados insuficientes ou degenerados)
	ErrFit = errors.New("fit error")
	// Serviço de narrativa indisponível ou credencial ausente
	ErrUpstream = errors.New("upstream error")
)

// ForecastError é um erro com contexto adicional para a pipeline
type ForecastError struct {
	Err     error  // Erro base
	Details string // Detalhes adicionais
	Cause   error  // Erro original da biblioteca/serviço (quando aplicável)
}

// Error implementa a interface error
func (e *ForecastError) Error() string {
	msg := e.Err.Error()
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause.Error())
	}
	return msg
}

// Unwrap permite errors.Is tanto com o sentinel quanto com a causa
func (e *ForecastError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func NewSchemaError(details string) *ForecastError {
	return &ForecastError{Err: ErrSchema, Details: details}
}

func NewParseError(details string, cause error) *ForecastError {
	return &ForecastError{Err: ErrParse, Details: details, Cause: cause}
}

func NewFitError(details string, cause error) *ForecastError {
	return &ForecastError{Err: ErrFit, Details: details, Cause: cause}
}

func NewUpstreamError(details string, cause error) *ForecastError {
	return &ForecastError{Err: ErrUpstream, Details: details, Cause: cause}
}
