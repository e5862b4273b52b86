// Package report exporta a tabela de resumo trimestral em planilha ou PDF.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	"github.com/vfg2006/revenue-forecast-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "summary"

// Cabeçalho da tabela de resumo, na mesma ordem das colunas
var SummaryHeader = []string{"Quarter", "Revenue ($000s)", "QoQ % Change", "YoY % Change"}

// BuildSummaryXLSX gera uma planilha com a tabela trimestral. Percentuais
// indefinidos ficam com a célula vazia.
func BuildSummaryXLSX(report *domain.ForecastReport) ([]byte, error) {
	if report == nil {
		return nil, errors.New("report: relatório vazio")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, errors.Wrap(err, "report: erro ao nomear a aba")
	}

	if err := f.SetSheetRow(summarySheet, "A1", &SummaryHeader); err != nil {
		return nil, errors.Wrap(err, "report: erro ao escrever o cabeçalho")
	}

	for i, row := range report.Summary {
		values := []any{row.Quarter.String(), row.RevenueThousands, nil, nil}
		if row.QoQPctChange != nil {
			values[2] = *row.QoQPctChange
		}
		if row.YoYPctChange != nil {
			values[3] = *row.YoYPctChange
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return nil, errors.Wrapf(err, "report: erro ao escrever a linha %s", row.Quarter)
		}
	}

	_ = f.SetColWidth(summarySheet, "A", "D", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "report: erro ao gerar a planilha")
	}

	return buf.Bytes(), nil
}

// BuildSummaryPDF gera um PDF com a tabela trimestral e, se houver, o comentário
func BuildSummaryPDF(report *domain.ForecastReport) ([]byte, error) {
	if report == nil {
		return nil, errors.New("report: relatório vazio")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Quarterly Revenue Forecast")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("File: %s", report.Filename)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Last observed date: %s", report.Cutoff.Format(time.DateOnly)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Horizon: %d months (%d days)", report.HorizonMonths, report.HorizonDays))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(8)

	widths := []float64{35, 45, 45, 45}

	pdf.SetFont("Arial", "B", 10)
	for i, title := range SummaryHeader {
		pdf.CellFormat(widths[i], 6, title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range report.Summary {
		pdf.CellFormat(widths[0], 6, row.Quarter.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%.1f", row.RevenueThousands), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, FormatPct(row.QoQPctChange, ""), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, FormatPct(row.YoYPctChange, ""), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if report.Commentary != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, "Commentary")
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(report.Commentary), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "report: erro ao gerar o PDF")
	}

	return buf.Bytes(), nil
}

// FormatPct formata um percentual com uma casa decimal; nil vira undefined
func FormatPct(v *float64, undefined string) string {
	if v == nil {
		return undefined
	}
	return fmt.Sprintf("%.1f", *v)
}
