package forecasting_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/revenue-forecast-api/internal/config"
	"github.com/vfg2006/revenue-forecast-api/internal/domain"
	"github.com/vfg2006/revenue-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/revenue-forecast-api/internal/usecases/forecasting/mocks"
	"github.com/vfg2006/revenue-forecast-api/internal/usecases/summarizing"
	"github.com/vfg2006/revenue-forecast-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func init() {
	log.SetupTestLogger()
}

func testConfig() *config.Config {
	return &config.Config{
		Forecast: config.Forecast{
			DefaultHorizonMonths: 12,
			MaxHorizonMonths:     24,
			DaysPerMonth:         30,
			MinDistinctDates:     2,
		},
		Narrative: config.Narrative{RecentRecords: 60},
	}
}

// yearOfRevenue gera uma observação diária para 2023
func yearOfRevenue() domain.Series {
	var series domain.Series
	for d := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() == 2023; d = d.AddDate(0, 0, 1) {
		series = append(series, domain.Observation{Date: d, Value: 1000})
	}
	return series
}

func flatForecast(series domain.Series, horizonDays int) *domain.Forecast {
	forecast := &domain.Forecast{}
	end := series.Cutoff().AddDate(0, 0, horizonDays)
	for d := series.Start(); !d.After(end); d = d.AddDate(0, 0, 1) {
		forecast.Points = append(forecast.Points, domain.ForecastPoint{Date: d, Predicted: 1000})
	}
	return forecast
}

type pipelineMocks struct {
	loader     *mocks.MockSeriesLoader
	forecaster *mocks.MockForecaster
	narrator   *mocks.MockNarrator
	service    forecasting.ForecastService
}

func newPipeline(t *testing.T) pipelineMocks {
	ctrl := gomock.NewController(t)

	m := pipelineMocks{
		loader:     mocks.NewMockSeriesLoader(ctrl),
		forecaster: mocks.NewMockForecaster(ctrl),
		narrator:   mocks.NewMockNarrator(ctrl),
	}
	m.service = forecasting.NewService(testConfig(), m.loader, m.forecaster, summarizing.NewService(), m.narrator)
	return m
}

func TestRun_FullPipeline(t *testing.T) {
	m := newPipeline(t)
	series := yearOfRevenue()
	file := strings.NewReader("xlsx")

	m.loader.EXPECT().Load(gomock.Any(), "revenue.xlsx", file).Return(series, nil)
	m.forecaster.EXPECT().Forecast(gomock.Any(), series, 90).Return(flatForecast(series, 90), nil)
	m.narrator.EXPECT().
		Commentary(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, recent domain.Series) (string, error) {
			assert.Len(t, recent, 60)
			assert.Equal(t, series.Cutoff(), recent[len(recent)-1].Date)
			return "Revenue is flat.", nil
		})

	report, err := m.service.Run(context.Background(), forecasting.Request{
		Filename:       "revenue.xlsx",
		File:           file,
		HorizonMonths:  3,
		WithCommentary: true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, 90, report.HorizonDays)
	assert.Equal(t, series.Cutoff(), report.Cutoff)
	assert.Equal(t, "Revenue is flat.", report.Commentary)
	assert.Empty(t, report.CommentaryError)

	require.Len(t, report.Summary, 1)
	assert.Equal(t, "2024Q1", report.Summary[0].Quarter.String())
	assert.Equal(t, 90.0, report.Summary[0].RevenueThousands)
	assert.Nil(t, report.Summary[0].QoQPctChange)
	assert.Nil(t, report.Buckets[0].ActualSum)
}

func TestRun_InvalidHorizon(t *testing.T) {
	m := newPipeline(t)

	for _, months := range []int{0, -1, 25} {
		_, err := m.service.Run(context.Background(), forecasting.Request{Filename: "r.xlsx", HorizonMonths: months})

		assert.ErrorIs(t, err, forecasting.ErrInvalidHorizon, "meses=%d", months)
	}
}

func TestRun_SchemaErrorStopsPipeline(t *testing.T) {
	m := newPipeline(t)

	m.loader.EXPECT().Load(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.NewSchemaError("colunas obrigatórias ausentes: Revenue"))
	// forecaster e narrator não podem ser chamados

	report, err := m.service.Run(context.Background(), forecasting.Request{Filename: "r.xlsx", HorizonMonths: 6, WithCommentary: true})

	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrSchema)
}

func TestRun_FitErrorStopsPipeline(t *testing.T) {
	m := newPipeline(t)
	series := domain.Series{{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Value: 1}}

	m.loader.EXPECT().Load(gomock.Any(), gomock.Any(), gomock.Any()).Return(series, nil)
	m.forecaster.EXPECT().Forecast(gomock.Any(), series, 180).Return(nil, domain.NewFitError("dados insuficientes", nil))

	report, err := m.service.Run(context.Background(), forecasting.Request{Filename: "r.xlsx", HorizonMonths: 6, WithCommentary: true})

	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrFit)
}

func TestRun_NarrativeErrorKeepsPartialReport(t *testing.T) {
	m := newPipeline(t)
	series := yearOfRevenue()

	m.loader.EXPECT().Load(gomock.Any(), gomock.Any(), gomock.Any()).Return(series, nil)
	m.forecaster.EXPECT().Forecast(gomock.Any(), series, 30).Return(flatForecast(series, 30), nil)
	m.narrator.EXPECT().Commentary(gomock.Any(), gomock.Any()).
		Return("", domain.NewUpstreamError("serviço de narrativa indisponível", nil))

	report, err := m.service.Run(context.Background(), forecasting.Request{Filename: "r.xlsx", HorizonMonths: 1, WithCommentary: true})

	assert.ErrorIs(t, err, domain.ErrUpstream)
	require.NotNil(t, report)
	assert.NotEmpty(t, report.Summary)
	assert.Empty(t, report.Commentary)
	assert.Contains(t, report.CommentaryError, "upstream error")
}

func TestRun_WithoutCommentary(t *testing.T) {
	m := newPipeline(t)
	series := yearOfRevenue()

	m.loader.EXPECT().Load(gomock.Any(), gomock.Any(), gomock.Any()).Return(series, nil)
	m.forecaster.EXPECT().Forecast(gomock.Any(), series, 720).Return(flatForecast(series, 720), nil)

	report, err := m.service.Run(context.Background(), forecasting.Request{Filename: "r.xlsx", HorizonMonths: 24})

	require.NoError(t, err)
	assert.Empty(t, report.Commentary)
	require.Len(t, report.Summary, 8)
	assert.Nil(t, report.Summary[3].YoYPctChange)
	require.NotNil(t, report.Summary[4].YoYPctChange)
}
