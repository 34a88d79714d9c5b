package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsAreExposed(t *testing.T) {
	m := New()
	m.ErrorsTotal.WithLabelValues("FORBIDDEN").Inc()
	m.ErrorsTotal.WithLabelValues("FORBIDDEN").Inc()
	m.ErrorsTotal.WithLabelValues("NOT_FOUND").Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ErrorsTotal.WithLabelValues("FORBIDDEN")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `review_request_errors_total{code="FORBIDDEN"} 2`)
	assert.Contains(t, string(body), `review_request_errors_total{code="NOT_FOUND"} 1`)
}
