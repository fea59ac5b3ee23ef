package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for atcud_decode_total
const (
	OutcomeDecoded = "decoded"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// Metrics tracks validation and decode outcomes
type Metrics struct {
	Validations    *prometheus.CounterVec
	Decodes        *prometheus.CounterVec
	DecodeDuration prometheus.Histogram
}

// NewMetrics registers the server metrics on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atcud_validations_total",
			Help: "Total number of validated payloads by result",
		}, []string{"result"}),
		Decodes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atcud_decode_total",
			Help: "Total number of decoded payloads by outcome",
		}, []string{"outcome"}),
		DecodeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "atcud_decode_duration_seconds",
			Help:    "Duration of payload decoding",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.005, 0.01},
		}),
	}
}

// ObserveValidation records a validation result
func (m *Metrics) ObserveValidation(valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.Validations.WithLabelValues(result).Inc()
}

// ObserveDecode records a decode outcome and the time spent on that payload
func (m *Metrics) ObserveDecode(outcome string, d time.Duration) {
	m.Decodes.WithLabelValues(outcome).Inc()
	m.DecodeDuration.Observe(d.Seconds())
}
