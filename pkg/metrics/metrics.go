package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "photohub", Name: "uploads_total", Help: "Number of processed uploads by format and outcome."},
		[]string{"format", "outcome"},
	)
	CompressionInputBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "photohub", Name: "compression_input_bytes_total", Help: "Bytes read by the compression pipeline, by format."},
		[]string{"format"},
	)
	CompressionOutputBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "photohub", Name: "compression_output_bytes_total", Help: "Bytes written by the compression pipeline, by format."},
		[]string{"format"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "photohub", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "photohub", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(UploadsTotal)
	reg.MustRegister(CompressionInputBytes)
	reg.MustRegister(CompressionOutputBytes)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
