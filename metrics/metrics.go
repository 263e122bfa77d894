// Package metrics provides Prometheus metrics for conversion and corpus
// validation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TitlesConvertedTotal counts title documents written to the corpus.
	TitlesConvertedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rules_us_ga_titles_converted_total",
		Help: "Total number of OCGA titles converted to Akoma Ntoso.",
	})

	// SectionsConvertedTotal counts sections across converted titles.
	SectionsConvertedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rules_us_ga_sections_converted_total",
		Help: "Total number of OCGA sections converted to Akoma Ntoso.",
	})

	// ConversionFailuresTotal counts source files that failed to convert, by stage.
	ConversionFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rules_us_ga_conversion_failures_total",
		Help: "Total number of source files that failed to convert, by stage (read, write).",
	}, []string{"stage"})

	// FilesValidatedTotal counts corpus files checked by the validator.
	FilesValidatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rules_us_ga_files_validated_total",
		Help: "Total number of corpus files validated.",
	})

	// ValidationIssuesTotal counts validation issues by code.
	ValidationIssuesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rules_us_ga_validation_issues_total",
		Help: "Total number of corpus validation issues, by issue code.",
	}, []string{"code"})
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
