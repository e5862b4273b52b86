package domain

import "time"

// ForecastPoint é um valor previsto pelo modelo para uma data.
// Os limites de incerteza servem apenas para os gráficos.
type ForecastPoint struct {
	Date      time.Time `json:"date"`
	Predicted float64   `json:"predicted"`
	Lower     float64   `json:"lower"`
	Upper     float64   `json:"upper"`
}

// Forecast agrupa os pontos previstos e a decomposição (tendência/sazonalidade)
// devolvida pela biblioteca de previsão
type Forecast struct {
	Points     []ForecastPoint `json:"points"`
	Components any             `json:"components,omitempty"`
}
