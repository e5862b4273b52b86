package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Formatos aceitos para datas vindas de planilhas
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1-2-06",
	"01/02/06",
	"2-Jan-2006",
	"Jan 2, 2006",
}

// excelEpoch é o dia zero do sistema de datas 1900 do Excel (com o bug do ano bissexto de 1900)
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseDate interpreta uma data de planilha e devolve a meia-noite UTC do dia.
// Aceita os formatos mais comuns e números seriais do Excel.
func ParseDate(dateStr string) (time.Time, error) {
	value := strings.TrimSpace(dateStr)
	if value == "" {
		return time.Time{}, fmt.Errorf("data vazia")
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 && serial < 2958466 {
		return excelEpoch.AddDate(0, 0, int(serial)), nil
	}

	return time.Time{}, fmt.Errorf("formato de data não reconhecido: %q", value)
}

// ParseAmount interpreta um valor monetário, removendo símbolo de moeda e separador de milhar
func ParseAmount(amountStr string) (float64, error) {
	value := strings.TrimSpace(amountStr)
	value = strings.TrimPrefix(value, "$")
	value = strings.ReplaceAll(value, ",", "")
	value = strings.ReplaceAll(value, " ", "")
	if value == "" {
		return 0, fmt.Errorf("valor vazio")
	}

	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("valor numérico inválido: %q", amountStr)
	}

	return amount, nil
}
