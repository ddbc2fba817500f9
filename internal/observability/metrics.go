package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	apiErrorsTotal        *prometheus.CounterVec
	quizEvaluationsTotal  *prometheus.CounterVec
	gradeTransitionsTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "classroom_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "classroom_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "classroom_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		quizEvaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "classroom_quiz_evaluations_total",
			Help: "Quiz attempts scored, by pass/fail verdict.",
		}, []string{"status"})

		gradeTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "classroom_grade_transitions_total",
			Help: "Grade lifecycle transitions applied, by resulting status.",
		}, []string{"status"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			quizEvaluationsTotal,
			gradeTransitionsTotal,
		)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// QuizEvaluations exposes the counter for scored quiz attempts.
func QuizEvaluations() *prometheus.CounterVec {
	RegisterMetrics()
	return quizEvaluationsTotal
}

// GradeTransitions exposes the counter for grade lifecycle transitions.
func GradeTransitions() *prometheus.CounterVec {
	RegisterMetrics()
	return gradeTransitionsTotal
}
