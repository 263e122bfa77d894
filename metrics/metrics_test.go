package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(ValidationIssuesTotal.WithLabelValues("misplaced"))
	ValidationIssuesTotal.WithLabelValues("misplaced").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ValidationIssuesTotal.WithLabelValues("misplaced")))

	beforeTitles := testutil.ToFloat64(TitlesConvertedTotal)
	TitlesConvertedTotal.Inc()
	assert.Equal(t, beforeTitles+1, testutil.ToFloat64(TitlesConvertedTotal))
}

func TestHandler(t *testing.T) {
	SectionsConvertedTotal.Add(3)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rules_us_ga_sections_converted_total")
}
