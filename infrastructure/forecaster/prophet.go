// Package forecaster adapta a biblioteca de previsão de séries temporais
// à função pura treinar-e-prever usada pela pipeline
package forecaster

import (
	"context"
	"fmt"
	"math"
	"time"

	goforecaster "github.com/aouyang1/go-forecaster"
	"github.com/pkg/errors"
	"github.com/vfg2006/revenue-forecast-api/internal/config"
	"github.com/vfg2006/revenue-forecast-api/internal/domain"
	"github.com/vfg2006/revenue-forecast-api/pkg/log"
)

// model é o subconjunto da biblioteca usado pelo adaptador
type model interface {
	Fit(t []time.Time, y []float64) error
	Predict(t []time.Time) (*goforecaster.Results, error)
}

type modelFactory func() (model, error)

// newLibraryModel cria o modelo com as opções padrão da biblioteca
// (tendência linear + sazonalidade diária/semanal por séries de Fourier)
func newLibraryModel() (model, error) {
	f, err := goforecaster.New(nil)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Prophet treina um modelo na série e prevê do primeiro dia observado até
// horizonDays depois do último
type Prophet struct {
	minDistinctDates int
	newModel         modelFactory
}

func NewProphet(cfg config.Forecast) *Prophet {
	minDates := cfg.MinDistinctDates
	if minDates < 2 {
		minDates = 2
	}

	return &Prophet{
		minDistinctDates: minDates,
		newModel:         newLibraryModel,
	}
}

// DaysForMonths converte o horizonte em meses para dias (aproximação meses * dias por mês)
func DaysForMonths(months, daysPerMonth int) int {
	return months * daysPerMonth
}

func (p *Prophet) Forecast(ctx context.Context, series domain.Series, horizonDays int) (*domain.Forecast, error) {
	logger := log.ForContext(ctx)

	if horizonDays <= 0 {
		return nil, domain.NewFitError(fmt.Sprintf("horizonte inválido: %d dias", horizonDays), nil)
	}

	if distinct := series.DistinctDates(); distinct < p.minDistinctDates {
		return nil, domain.NewFitError(
			fmt.Sprintf("são necessárias ao menos %d datas distintas, recebidas %d", p.minDistinctDates, distinct),
			nil,
		)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "forecaster: execução cancelada antes do treino")
	}

	trainDates, trainValues := dailyTotals(series)
	predictDates := DateRange(series.Start(), series.Cutoff().AddDate(0, 0, horizonDays))

	m, err := p.newModel()
	if err != nil {
		return nil, domain.NewFitError("erro ao criar o modelo", errors.Wrap(err, "go-forecaster"))
	}

	start := time.Now()
	if err := fit(m, trainDates, trainValues); err != nil {
		return nil, domain.NewFitError("treinamento não convergiu", errors.Wrap(err, "go-forecaster"))
	}

	results, err := predict(m, predictDates)
	if err != nil {
		return nil, domain.NewFitError("erro ao gerar a previsão", errors.Wrap(err, "go-forecaster"))
	}

	if results == nil {
		return nil, domain.NewFitError("a biblioteca não devolveu resultados", nil)
	}

	if len(results.Forecast) != len(predictDates) {
		return nil, domain.NewFitError(
			fmt.Sprintf("previsão com %d pontos, esperados %d", len(results.Forecast), len(predictDates)),
			nil,
		)
	}

	points := make([]domain.ForecastPoint, len(predictDates))
	for i, d := range predictDates {
		if math.IsNaN(results.Forecast[i]) || math.IsInf(results.Forecast[i], 0) {
			return nil, domain.NewFitError(fmt.Sprintf("valor previsto inválido em %s", d.Format(time.DateOnly)), nil)
		}

		points[i] = domain.ForecastPoint{
			Date:      d,
			Predicted: results.Forecast[i],
			Lower:     valueAt(results.Lower, i, results.Forecast[i]),
			Upper:     valueAt(results.Upper, i, results.Forecast[i]),
		}
	}

	logger.WithFields(log.Fields{
		"forecast_train_points":   len(trainDates),
		"forecast_predict_points": len(points),
		"forecast_horizon_days":   horizonDays,
		"forecast_duration_ms":    time.Since(start).Milliseconds(),
	}).Info("forecaster: modelo treinado")

	return &domain.Forecast{
		Points:     points,
		Components: results.SeriesComponents,
	}, nil
}

// fit protege a pipeline de panics da biblioteca com dados degenerados
func fit(m model, t []time.Time, y []float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic no treinamento: %v", r)
		}
	}()
	return m.Fit(t, y)
}

func predict(m model, t []time.Time) (results *goforecaster.Results, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic na previsão: %v", r)
		}
	}()
	return m.Predict(t)
}

// dailyTotals soma observações da mesma data; o modelo espera datas únicas
func dailyTotals(series domain.Series) ([]time.Time, []float64) {
	dates := make([]time.Time, 0, len(series))
	values := make([]float64, 0, len(series))

	for _, obs := range series {
		if n := len(dates); n > 0 && dates[n-1].Equal(obs.Date) {
			values[n-1] += obs.Value
			continue
		}
		dates = append(dates, obs.Date)
		values = append(values, obs.Value)
	}

	return dates, values
}

// DateRange gera um dia por data de start até end, inclusive
func DateRange(start, end time.Time) []time.Time {
	start = domain.DateOnly(start)
	end = domain.DateOnly(end)
	if end.Before(start) {
		return nil
	}

	days := int(end.Sub(start).Hours()/24) + 1
	dates := make([]time.Time, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	return dates
}

func valueAt(values []float64, i int, fallback float64) float64 {
	if i >= len(values) || math.IsNaN(values[i]) {
		return fallback
	}
	return values[i]
}
