// Package summarizing agrega a previsão diária em trimestres e calcula as
// variações trimestre contra trimestre (QoQ) e ano contra ano (YoY)
package summarizing

import (
	"sort"

	"github.com/vfg2006/revenue-forecast-api/internal/domain"
	"github.com/vfg2006/revenue-forecast-api/pkg/utils"
)

const (
	qoqLag = 1 // trimestre anterior
	yoyLag = 4 // mesmo trimestre do ano anterior

	thousands = 1000.0
	decimals  = 1
)

// Summarizer define a interface do agregador trimestral
type Summarizer interface {
	// Summarize agrega a previsão em trimestres e monta as linhas da tabela de resumo
	Summarize(series domain.Series, forecast []domain.ForecastPoint) ([]domain.QuarterlyBucket, []domain.SummaryRow)
}

type Service struct{}

func NewService() Summarizer {
	return &Service{}
}

func (s *Service) Summarize(series domain.Series, forecast []domain.ForecastPoint) ([]domain.QuarterlyBucket, []domain.SummaryRow) {
	buckets := Aggregate(series, forecast)
	return buckets, Summarize(buckets)
}

// Aggregate soma os pontos futuros da previsão (estritamente depois da última data
// observada) por trimestre e associa a soma real do mesmo trimestre.
// Somente trimestres com pontos futuros geram bucket: trimestres que só possuem
// dados reais não aparecem.
func Aggregate(series domain.Series, forecast []domain.ForecastPoint) []domain.QuarterlyBucket {
	cutoff := series.Cutoff()

	forecasted := make(map[domain.QuarterKey]float64)
	for _, point := range forecast {
		if !point.Date.After(cutoff) {
			continue
		}
		forecasted[domain.QuarterOf(point.Date)] += point.Predicted
	}

	actuals := make(map[domain.QuarterKey]float64)
	for _, obs := range series {
		actuals[domain.QuarterOf(obs.Date)] += obs.Value
	}

	buckets := make([]domain.QuarterlyBucket, 0, len(forecasted))
	for quarter, sum := range forecasted {
		bucket := domain.QuarterlyBucket{
			Quarter:       quarter,
			ForecastedSum: sum,
		}
		if actual, ok := actuals[quarter]; ok {
			bucket.ActualSum = utils.Float64Ptr(actual)
		}
		buckets = append(buckets, bucket)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Quarter.Before(buckets[j].Quarter)
	})

	return buckets
}

// Summarize formata os buckets ordenados: receita em milhares e variações percentuais,
// todos arredondados para uma casa decimal
func Summarize(buckets []domain.QuarterlyBucket) []domain.SummaryRow {
	rows := make([]domain.SummaryRow, len(buckets))
	for i, bucket := range buckets {
		rows[i] = domain.SummaryRow{
			Quarter:          bucket.Quarter,
			RevenueThousands: utils.RoundHalfEven(bucket.ForecastedSum/thousands, decimals),
			QoQPctChange:     pctChange(buckets, i, qoqLag),
			YoYPctChange:     pctChange(buckets, i, yoyLag),
		}
	}

	return rows
}

// pctChange compara o bucket i com o bucket i-lag; nil quando não há histórico
// suficiente ou o denominador é zero
func pctChange(buckets []domain.QuarterlyBucket, i, lag int) *float64 {
	if i-lag < 0 {
		return nil
	}

	pct, ok := utils.PctChange(buckets[i-lag].ForecastedSum, buckets[i].ForecastedSum)
	if !ok {
		return nil
	}

	return utils.Float64Ptr(utils.RoundHalfEven(pct, decimals))
}
