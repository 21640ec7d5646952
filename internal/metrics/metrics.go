package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "crop_doctor"

// Исходы поиска описания.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	remedyResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remedy_resolutions_total",
			Help:      "Remedy resolutions by the cascade stage that matched",
		}, []string{"stage"},
	)
	summaryLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_lookups_total",
			Help:      "Outbound summary lookups by outcome",
		}, []string{"outcome"},
	)
	diagnoses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnoses_total",
			Help:      "Photo diagnoses by identifier and outcome",
		}, []string{"provider", "outcome"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method", "status"},
	)
	tableReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remedy_table_reloads_total",
			Help:      "Remedy table reload attempts by result",
		}, []string{"result"},
	)
)

func init() {
	prometheus.MustRegister(remedyResolutions, summaryLookups, diagnoses, requestDuration, tableReloads)
}

// RemedyResolved учитывает шаг каскада, на котором нашлось средство.
func RemedyResolved(stage string) {
	remedyResolutions.WithLabelValues(stage).Inc()
}

// SummaryLookup учитывает один исходящий запрос справки.
func SummaryLookup(outcome string) {
	summaryLookups.WithLabelValues(outcome).Inc()
}

// Diagnosed учитывает диагностику одного фото.
func Diagnosed(provider, outcome string) {
	diagnoses.WithLabelValues(provider, outcome).Inc()
}

// ObserveRequest записывает длительность HTTP-запроса.
func ObserveRequest(path, method, status string, seconds float64) {
	requestDuration.WithLabelValues(path, method, status).Observe(seconds)
}

// TableReloaded учитывает перезагрузку таблицы средств.
func TableReloaded(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	tableReloads.WithLabelValues(result).Inc()
}
