package openaidomain

import "fmt"

// ErrorResponse representa a estrutura de erro da API de chat completion
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes do erro retornado pela API
type ErrorDetails struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code,omitempty"`
}

// APIError é o erro retornado pelo cliente quando a API responde com status diferente de 2xx
type APIError struct {
	StatusCode int
	Details    ErrorDetails
}

// IsUnauthorized verifica se a credencial foi recusada
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403 || e.Details.Code == "invalid_api_key"
}

func (e *APIError) Error() string {
	if e.Details.Message == "" {
		return fmt.Sprintf("chat completion falhou com status %d", e.StatusCode)
	}
	return fmt.Sprintf("chat completion falhou com status %d: %s", e.StatusCode, e.Details.Message)
}
