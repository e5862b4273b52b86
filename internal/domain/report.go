package domain

import "time"

// ForecastReport é o resultado completo de uma execução (upload -> previsão -> resumo)
type ForecastReport struct {
	ID              string            `json:"id"`
	Filename        string            `json:"filename"`
	HorizonMonths   int               `json:"horizon_months"`
	HorizonDays     int               `json:"horizon_days"`
	Cutoff          time.Time         `json:"cutoff"`
	Observations    Series            `json:"observations"`
	Forecast        *Forecast         `json:"forecast"`
	Buckets         []QuarterlyBucket `json:"buckets"`
	Summary         []SummaryRow      `json:"summary"`
	Commentary      string            `json:"commentary,omitempty"`
	CommentaryError string            `json:"commentary_error,omitempty"`
	GeneratedAt     time.Time         `json:"generated_at"`
}
