package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundHalfEven(t *testing.T) {
	assert.Equal(t, 1234.6, RoundHalfEven(1234567.0/1000, 1))
	assert.Equal(t, 12.3, RoundHalfEven(12.34, 1))
	assert.Equal(t, -7.1, RoundHalfEven(-7.06, 1))
	assert.Equal(t, 0.0, RoundHalfEven(0, 1))
	assert.Equal(t, 2.0, RoundHalfEven(2.5, 0))
	assert.True(t, math.IsNaN(RoundHalfEven(math.NaN(), 1)))
	assert.Equal(t, 10.57, RoundWithTwoDecimalPlace(10.567))
}

func TestPctChange(t *testing.T) {
	pct, ok := PctChange(100, 150)
	assert.True(t, ok)
	assert.Equal(t, 50.0, pct)

	pct, ok = PctChange(200, 100)
	assert.True(t, ok)
	assert.Equal(t, -50.0, pct)

	_, ok = PctChange(0, 100)
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{
		"2024-03-15",
		"2024-03-15 13:45:00",
		"2024-03-15T13:45:00Z",
		"03/15/2024",
		"3/15/2024",
		"03-15-24",
		"45366",
		" 2024-03-15 ",
	} {
		got, err := ParseDate(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "yesterday", "2024-13-45", "-3"} {
		_, err := ParseDate(input)
		assert.Error(t, err, input)
	}
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("$1,234.50")
	require.NoError(t, err)
	assert.Equal(t, 1234.5, amount)

	amount, err = ParseAmount("-12")
	require.NoError(t, err)
	assert.Equal(t, -12.0, amount)

	_, err = ParseAmount("n/a")
	assert.Error(t, err)

	_, err = ParseAmount(" ")
	assert.Error(t, err)
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, 10)
}
