package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestIsDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "")
	assert.True(t, IsDevelopment())

	t.Setenv("APP_ENV", "production")
	assert.False(t, IsDevelopment())
}

func TestKeepInDevelopment(t *testing.T) {
	assert.True(t, keepInDevelopment("run_id"))
	assert.True(t, keepInDevelopment("forecast_horizon_days"))
	assert.False(t, keepInDevelopment("user_agent"))
}
