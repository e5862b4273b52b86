// Command forecast executa a previsão trimestral de uma planilha pela linha de comando.
//
//	forecast -file receita.xlsx -months 6 -commentary
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/vfg2006/revenue-forecast-api/infrastructure/forecaster"
	"github.com/vfg2006/revenue-forecast-api/infrastructure/integrator/openai"
	"github.com/vfg2006/revenue-forecast-api/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/revenue-forecast-api/infrastructure/report"
	"github.com/vfg2006/revenue-forecast-api/infrastructure/spreadsheet"
	"github.com/vfg2006/revenue-forecast-api/internal/config"
	"github.com/vfg2006/revenue-forecast-api/internal/domain"
	"github.com/vfg2006/revenue-forecast-api/internal/usecases/forecasting"
	"github.com/vfg2006/revenue-forecast-api/internal/usecases/summarizing"
	"github.com/vfg2006/revenue-forecast-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Configure(cfg.App.LogLevel)

	file := flag.String("file", "", "planilha com as colunas de data e receita (.xlsx, .xlsm ou .csv)")
	months := flag.Int("months", cfg.Forecast.DefaultHorizonMonths, "horizonte da previsão em meses")
	commentary := flag.Bool("commentary", false, "gera o comentário com o modelo de linguagem")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, *file, *months, *commentary, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, path string, months int, withCommentary bool, out io.Writer) error {
	if err := cfg.ValidateForecast(); err != nil {
		return err
	}

	var narrator forecasting.Narrator
	if withCommentary {
		n, err := openai.New(cfg.Narrative, openaiclient.NewClient(cfg.Narrative))
		if err != nil {
			return err
		}
		narrator = n
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	service := forecasting.NewService(
		cfg,
		spreadsheet.NewLoader(cfg.Spreadsheet),
		forecaster.NewProphet(cfg.Forecast),
		summarizing.NewService(),
		narrator,
	)

	forecastReport, err := withSpinner("Gerando previsão", func() (*domain.ForecastReport, error) {
		return service.Run(ctx, forecasting.Request{
			Filename:       filepath.Base(path),
			File:           f,
			HorizonMonths:  months,
			WithCommentary: withCommentary,
		})
	})
	if err != nil && (forecastReport == nil || !errors.Is(err, domain.ErrUpstream)) {
		return err
	}

	if err := printSummary(out, forecastReport); err != nil {
		return err
	}

	switch {
	case forecastReport.CommentaryError != "":
		fmt.Fprintf(out, "\nComentário indisponível: %s\n", forecastReport.CommentaryError)
	case forecastReport.Commentary != "":
		fmt.Fprintf(out, "\n%s\n", forecastReport.Commentary)
	}

	return nil
}

// withSpinner mostra um spinner no stderr enquanto fn executa
func withSpinner(description string, fn func() (*domain.ForecastReport, error)) (*domain.ForecastReport, error) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	result, err := fn()
	close(done)
	_ = bar.Finish()

	return result, err
}

// printSummary imprime a tabela trimestral; percentuais indefinidos saem como NaN
func printSummary(out io.Writer, forecastReport *domain.ForecastReport) error {
	fmt.Fprintf(out, "Última data observada: %s | horizonte: %d meses (%d dias)\n\n",
		forecastReport.Cutoff.Format(time.DateOnly), forecastReport.HorizonMonths, forecastReport.HorizonDays)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for i, title := range report.SummaryHeader {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, title)
	}
	fmt.Fprintln(w, "\t")

	for _, row := range forecastReport.Summary {
		fmt.Fprintf(w, "%s\t%.1f\t%s\t%s\t\n",
			row.Quarter,
			row.RevenueThousands,
			report.FormatPct(row.QoQPctChange, "NaN"),
			report.FormatPct(row.YoYPctChange, "NaN"),
		)
	}

	return w.Flush()
}
