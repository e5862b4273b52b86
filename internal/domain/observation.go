package domain

import (
	"time"
)

// Observation representa uma medição real de receita em uma data
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series é a série canônica (data, valor) ordenada de forma ascendente pela data.
// Após ser produzida pelo loader não deve ser alterada.
type Series []Observation

// Start retorna a primeira data da série
func (s Series) Start() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[0].Date
}

// Cutoff retorna a última data observada. Pontos de previsão depois dela são "futuros".
func (s Series) Cutoff() time.Time {
	var cutoff time.Time
	for _, obs := range s {
		if obs.Date.After(cutoff) {
			cutoff = obs.Date
		}
	}
	return cutoff
}

// Tail retorna as n observações mais recentes
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return Series{}
	}
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// DistinctDates conta as datas distintas presentes na série
func (s Series) DistinctDates() int {
	seen := make(map[time.Time]struct{}, len(s))
	for _, obs := range s {
		seen[obs.Date] = struct{}{}
	}
	return len(seen)
}

// Dates retorna as datas e os valores em slices paralelos
func (s Series) Dates() ([]time.Time, []float64) {
	dates := make([]time.Time, len(s))
	values := make([]float64, len(s))
	for i, obs := range s {
		dates[i] = obs.Date
		values[i] = obs.Value
	}
	return dates, values
}

// DateOnly normaliza um instante para a meia-noite UTC do mesmo dia de calendário
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
