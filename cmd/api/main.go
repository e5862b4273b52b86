package main

import (
	"context"
	"errors"

	"github.com/vfg2006/revenue-forecast-api/infrastructure/forecaster"
	"github.com/vfg2006/revenue-forecast-api/infrastructure/integrator/openai"
	"github.com/vfg2006/revenue-forecast-api/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/revenue-forecast-api/infrastructure/spreadsheet"
	"github.com/vfg2006/revenue-forecast-api/internal/api"
	"github.com/vfg2006/revenue-forecast-api/internal/config"
	"github.com/vfg2006/revenue-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/revenue-forecast-api/internal/usecases/summarizing"
	"github.com/vfg2006/revenue-forecast-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	log.L.Infof("Nível de log configurado para: %s", cfg.App.LogLevel)

	// Sem a chave do modelo de linguagem a aplicação não sobe
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			log.L.Fatal("OPENAI_API_KEY não configurada. Defina a variável de ambiente ou o arquivo .env")
		}
		log.L.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	narrator, err := openai.New(cfg.Narrative, openaiclient.NewClient(cfg.Narrative))
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao configurar o cliente de comentários")
	}

	forecastService := forecasting.NewService(
		cfg,
		spreadsheet.NewLoader(cfg.Spreadsheet),
		forecaster.NewProphet(cfg.Forecast),
		summarizing.NewService(),
		narrator,
	)

	server, err := api.New(cfg, forecastService)
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}
