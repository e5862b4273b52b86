package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	return RoundHalfEven(f, 2)
}

// RoundHalfEven arredonda para o número de casas informado usando o
// arredondamento bancário (metade para o par)
func RoundHalfEven(f float64, places int) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}

	scale := math.Pow(10, float64(places))
	return math.RoundToEven(f*scale) / scale
}

// PctChange calcula a variação percentual entre dois valores.
// Retorna false quando o valor anterior é zero (resultado indefinido).
func PctChange(previous, current float64) (float64, bool) {
	if previous == 0 || math.IsNaN(previous) || math.IsNaN(current) {
		return 0, false
	}

	return (current - previous) / previous * 100, true
}

// Float64Ptr retorna um ponteiro para o valor
func Float64Ptr(f float64) *float64 {
	return &f
}
