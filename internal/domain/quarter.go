package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QuarterKey identifica um trimestre civil, ex: 2024Q3
type QuarterKey struct {
	Year    int
	Quarter int
}

// QuarterOf deriva o trimestre de uma data: (ano, ceil(mês/3))
func QuarterOf(t time.Time) QuarterKey {
	return QuarterKey{
		Year:    t.Year(),
		Quarter: (int(t.Month())-1)/3 + 1,
	}
}

// ParseQuarterKey interpreta o formato "2024Q3"
func ParseQuarterKey(s string) (QuarterKey, error) {
	year, quarter, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(s)), "Q")
	if !ok {
		return QuarterKey{}, fmt.Errorf("trimestre inválido: %q", s)
	}

	y, err := strconv.Atoi(year)
	if err != nil {
		return QuarterKey{}, fmt.Errorf("trimestre inválido: %q", s)
	}

	q, err := strconv.Atoi(quarter)
	if err != nil || q < 1 || q > 4 {
		return QuarterKey{}, fmt.Errorf("trimestre inválido: %q", s)
	}

	return QuarterKey{Year: y, Quarter: q}, nil
}

func (k QuarterKey) String() string {
	return fmt.Sprintf("%dQ%d", k.Year, k.Quarter)
}

// Compare ordena por (ano, trimestre)
func (k QuarterKey) Compare(other QuarterKey) int {
	switch {
	case k.Year < other.Year:
		return -1
	case k.Year > other.Year:
		return 1
	case k.Quarter < other.Quarter:
		return -1
	case k.Quarter > other.Quarter:
		return 1
	default:
		return 0
	}
}

func (k QuarterKey) Before(other QuarterKey) bool {
	return k.Compare(other) < 0
}

// Start retorna o primeiro dia do trimestre
func (k QuarterKey) Start() time.Time {
	return time.Date(k.Year, time.Month((k.Quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
}

func (k QuarterKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *QuarterKey) UnmarshalText(text []byte) error {
	parsed, err := ParseQuarterKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
