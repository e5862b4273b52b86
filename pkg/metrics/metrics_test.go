package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRun(t *testing.T) {
	before := testutil.ToFloat64(runsTotal.WithLabelValues(OutcomeError))

	ObserveRun(errors.New("boom"))

	assert.Equal(t, before+1, testutil.ToFloat64(runsTotal.WithLabelValues(OutcomeError)))
}

func TestObserveStage(t *testing.T) {
	ObserveStage("load", time.Now(), nil)

	assert.GreaterOrEqual(t, testutil.CollectAndCount(stageDuration), 1)
}

func TestMiddleware(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "418"))

	handler := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "418")))
}
