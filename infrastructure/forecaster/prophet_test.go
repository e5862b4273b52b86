package forecaster

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	goforecaster "github.com/aouyang1/go-forecaster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/revenue-forecast-api/internal/config"
	"github.com/vfg2006/revenue-forecast-api/internal/domain"
	"github.com/vfg2006/revenue-forecast-api/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

// fakeModel devolve um valor constante e registra o que recebeu
type fakeModel struct {
	fitT     []time.Time
	fitY     []float64
	fitErr   error
	value    float64
	truncate int
	panicFit bool
	noResult bool
}

func (m *fakeModel) Fit(t []time.Time, y []float64) error {
	if m.panicFit {
		panic("matriz singular")
	}
	m.fitT, m.fitY = t, y
	return m.fitErr
}

func (m *fakeModel) Predict(t []time.Time) (*goforecaster.Results, error) {
	if m.noResult {
		return nil, nil
	}
	n := len(t) - m.truncate
	res := goforecaster.Results{
		T:        t[:n],
		Forecast: make([]float64, n),
		Upper:    make([]float64, n),
		Lower:    make([]float64, n),
	}
	for i := 0; i < n; i++ {
		res.Forecast[i] = m.value
		res.Upper[i] = m.value + 1
		res.Lower[i] = m.value - 1
	}
	return &res, nil
}

func newTestProphet(m *fakeModel) *Prophet {
	p := NewProphet(config.Forecast{MinDistinctDates: 2})
	p.newModel = func() (model, error) { return m, nil }
	return p
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDaysForMonths(t *testing.T) {
	assert.Equal(t, 30, DaysForMonths(1, 30))
	assert.Equal(t, 720, DaysForMonths(24, 30))
}

func TestDateRange(t *testing.T) {
	dates := DateRange(date(2024, 2, 27), date(2024, 3, 2))

	require.Len(t, dates, 5)
	assert.Equal(t, date(2024, 2, 29), dates[2])
	assert.Equal(t, date(2024, 3, 2), dates[4])
	assert.Nil(t, DateRange(date(2024, 3, 2), date(2024, 3, 1)))
}

func TestForecast_CoversHistoryAndHorizon(t *testing.T) {
	m := &fakeModel{value: 10}
	series := domain.Series{
		{Date: date(2024, 1, 1), Value: 1},
		{Date: date(2024, 1, 5), Value: 2},
		{Date: date(2024, 1, 5), Value: 3},
		{Date: date(2024, 1, 10), Value: 4},
	}

	forecast, err := newTestProphet(m).Forecast(context.Background(), series, 30)

	require.NoError(t, err)
	points := forecast.Points
	require.Len(t, points, 40)
	assert.Equal(t, series.Start(), points[0].Date)
	assert.Equal(t, series.Cutoff().AddDate(0, 0, 30), points[len(points)-1].Date)
	for i := 1; i < len(points); i++ {
		assert.Equal(t, points[i-1].Date.AddDate(0, 0, 1), points[i].Date)
	}
	assert.Equal(t, 9.0, points[0].Lower)
	assert.Equal(t, 11.0, points[0].Upper)

	// datas repetidas são somadas antes do treino
	assert.Equal(t, []time.Time{date(2024, 1, 1), date(2024, 1, 5), date(2024, 1, 10)}, m.fitT)
	assert.Equal(t, []float64{1, 5, 4}, m.fitY)
}

func TestForecast_FitErrors(t *testing.T) {
	single := domain.Series{{Date: date(2024, 1, 1), Value: 1}, {Date: date(2024, 1, 1), Value: 2}}
	valid := domain.Series{{Date: date(2024, 1, 1), Value: 1}, {Date: date(2024, 1, 2), Value: 2}}

	tests := []struct {
		name    string
		series  domain.Series
		horizon int
		model   *fakeModel
	}{
		{name: "menos de duas datas distintas", series: single, horizon: 30, model: &fakeModel{}},
		{name: "série vazia", series: domain.Series{}, horizon: 30, model: &fakeModel{}},
		{name: "horizonte zero", series: valid, horizon: 0, model: &fakeModel{}},
		{name: "falha no treino", series: valid, horizon: 30, model: &fakeModel{fitErr: errors.New("did not converge")}},
		{name: "panic no treino", series: valid, horizon: 30, model: &fakeModel{panicFit: true}},
		{name: "previsão com NaN", series: valid, horizon: 30, model: &fakeModel{value: math.NaN()}},
		{name: "previsão incompleta", series: valid, horizon: 30, model: &fakeModel{truncate: 1}},
		{name: "sem resultados", series: valid, horizon: 30, model: &fakeModel{noResult: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestProphet(tt.model).Forecast(context.Background(), tt.series, tt.horizon)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFit)
		})
	}
}

func TestForecast_MinDistinctDatesIsConfigurable(t *testing.T) {
	p := NewProphet(config.Forecast{MinDistinctDates: 5})
	p.newModel = func() (model, error) { return &fakeModel{}, nil }

	series := domain.Series{
		{Date: date(2024, 1, 1), Value: 1},
		{Date: date(2024, 1, 2), Value: 1},
		{Date: date(2024, 1, 3), Value: 1},
	}

	_, err := p.Forecast(context.Background(), series, 10)
	assert.ErrorIs(t, err, domain.ErrFit)
	assert.Contains(t, err.Error(), "ao menos 5")
}

func TestForecast_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	series := domain.Series{{Date: date(2024, 1, 1), Value: 1}, {Date: date(2024, 1, 2), Value: 2}}
	_, err := newTestProphet(&fakeModel{}).Forecast(ctx, series, 10)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "cancelada")
}

// dailyRevenue gera um ano de receita diária com tendência e sazonalidade semanal
func dailyRevenue(year int) domain.Series {
	var series domain.Series
	for d := date(year, 1, 1); d.Year() == year; d = d.AddDate(0, 0, 1) {
		value := 1000 + float64(d.YearDay())*2
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			value *= 1.3
		}
		series = append(series, domain.Observation{Date: d, Value: value})
	}
	return series
}

func TestForecast_LibraryModel(t *testing.T) {
	series := dailyRevenue(2023)

	forecast, err := NewProphet(config.Forecast{MinDistinctDates: 2}).Forecast(context.Background(), series, 90)

	require.NoError(t, err)
	points := forecast.Points
	require.Len(t, points, 365+90)
	assert.Equal(t, date(2023, 1, 1), points[0].Date)
	assert.Equal(t, date(2024, 3, 30), points[len(points)-1].Date)
	for _, p := range points {
		assert.False(t, math.IsNaN(p.Predicted) || math.IsInf(p.Predicted, 0), p.Date.String())
	}

	_, err = json.Marshal(forecast)
	assert.NoError(t, err)
}

func TestForecast_LibraryModelDegenerateSeries(t *testing.T) {
	series := domain.Series{
		{Date: date(2024, 1, 1), Value: 100},
		{Date: date(2024, 1, 2), Value: 120},
	}

	_, err := NewProphet(config.Forecast{MinDistinctDates: 2}).Forecast(context.Background(), series, 30)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFit)
}
