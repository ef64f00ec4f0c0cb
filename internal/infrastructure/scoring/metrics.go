package scoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"truemeter-client/internal/domain/fraud"
)

const outcomeSuccess = "success"

// Metrics records scoring service calls
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the scoring collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "truemeter",
			Subsystem: "scoring",
			Name:      "requests_total",
			Help:      "Scoring service calls by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "truemeter",
			Subsystem: "scoring",
			Name:      "request_duration_seconds",
			Help:      "Time from request start until the outcome was known.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"endpoint"}),
	}
}

func (m *Metrics) observe(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	m.duration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func outcomeLabel(f *fraud.Failure) string {
	if f == nil {
		return outcomeSuccess
	}
	return string(f.Kind)
}
