// Package spreadsheet converte a planilha enviada pelo usuário na série canônica (data, receita)
package spreadsheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/revenue-forecast-api/internal/config"
	"github.com/vfg2006/revenue-forecast-api/internal/domain"
	"github.com/vfg2006/revenue-forecast-api/pkg/log"
	"github.com/vfg2006/revenue-forecast-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// Loader valida e normaliza o arquivo enviado
type Loader struct {
	dateColumn  string
	valueColumn string
}

func NewLoader(cfg config.Spreadsheet) *Loader {
	return &Loader{
		dateColumn:  strings.TrimSpace(cfg.DateColumn),
		valueColumn: strings.TrimSpace(cfg.ValueColumn),
	}
}

func (l *Loader) Load(ctx context.Context, filename string, r io.Reader) (domain.Series, error) {
	logger := log.ForContext(ctx)

	var (
		rows [][]string
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, domain.NewParseError(fmt.Sprintf("formato de arquivo não suportado: %q (use .xlsx ou .csv)", ext), nil)
	}
	if err != nil {
		return nil, err
	}

	series, err := l.parseRows(rows)
	if err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"forecast_file":         filename,
		"forecast_observations": len(series),
		"forecast_start":        series.Start(),
		"forecast_cutoff":       series.Cutoff(),
	}).Info("loader: planilha carregada")

	return series, nil
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewParseError("não foi possível abrir a planilha", errors.Wrap(err, "excelize"))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewSchemaError("planilha sem abas")
	}

	// Usa a primeira aba, como faria a leitura padrão de uma planilha
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, domain.NewParseError(fmt.Sprintf("erro ao ler a aba %q", sheets[0]), errors.Wrap(err, "excelize"))
	}

	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, domain.NewParseError("não foi possível ler o CSV", err)
	}

	return rows, nil
}

// parseRows localiza o cabeçalho, valida as colunas obrigatórias e converte as linhas
func (l *Loader) parseRows(rows [][]string) (domain.Series, error) {
	headerRow := -1
	for i, row := range rows {
		if !isBlank(row) {
			headerRow = i
			break
		}
	}
	if headerRow < 0 {
		return nil, domain.NewSchemaError("planilha vazia")
	}

	dateIdx, valueIdx := -1, -1
	for j, header := range rows[headerRow] {
		switch strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")) {
		case l.dateColumn:
			if dateIdx < 0 {
				dateIdx = j
			}
		case l.valueColumn:
			if valueIdx < 0 {
				valueIdx = j
			}
		}
	}

	var missing []string
	if dateIdx < 0 {
		missing = append(missing, l.dateColumn)
	}
	if valueIdx < 0 {
		missing = append(missing, l.valueColumn)
	}
	if len(missing) > 0 {
		return nil, domain.NewSchemaError(fmt.Sprintf("colunas obrigatórias ausentes: %s", strings.Join(missing, ", ")))
	}

	series := make(domain.Series, 0, len(rows)-headerRow-1)
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}

		// Número da linha na planilha (1-based)
		line := i + 1

		date, err := utils.ParseDate(cell(row, dateIdx))
		if err != nil {
			return nil, domain.NewParseError(fmt.Sprintf("linha %d, coluna %s", line, l.dateColumn), err)
		}

		value, err := utils.ParseAmount(cell(row, valueIdx))
		if err != nil {
			return nil, domain.NewParseError(fmt.Sprintf("linha %d, coluna %s", line, l.valueColumn), err)
		}

		series = append(series, domain.Observation{Date: date, Value: value})
	}

	if len(series) == 0 {
		return nil, domain.NewSchemaError("nenhuma linha de dados encontrada")
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return series, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
