package forecasting

import (
	"errors"
	"fmt"
)

// ErrInvalidHorizon indica horizonte fora do intervalo permitido
var ErrInvalidHorizon = errors.New("invalid forecast horizon")

// HorizonError informa o intervalo aceito
type HorizonError struct {
	Months int
	Max    int
}

func (e *HorizonError) Error() string {
	return fmt.Sprintf("%s: %d meses (permitido de 1 a %d)", ErrInvalidHorizon.Error(), e.Months, e.Max)
}

func (e *HorizonError) Unwrap() error {
	return ErrInvalidHorizon
}
