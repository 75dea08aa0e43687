package echobase62

import (
	"errors"
	"net/http"

	"github.com/presbrey/base62kit/base62"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the Prometheus registry used by this package
	Registry = prometheus.NewRegistry()

	// OperationsTotal counts codec calls by operation and result
	OperationsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "base62_operations_total",
			Help: "Total number of base62 encode and decode operations by result",
		},
		[]string{"op", "result"},
	)

	// PayloadBytes measures the raw byte size handled by the byte codec
	PayloadBytes = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "base62_payload_bytes",
			Help:    "Size in bytes of payloads passed through the byte codec",
			Buckets: prometheus.ExponentialBuckets(8, 4, 8),
		},
		[]string{"op"},
	)
)

const (
	opEncodeInt   = "encode_uint64"
	opDecodeInt   = "decode_uint64"
	opEncodeBytes = "encode_bytes"
	opDecodeBytes = "decode_bytes"
)

// resultLabel names the outcome of a codec call for the result label.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, base62.ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, base62.ErrInvalidChar):
		return "invalid_char"
	case errors.Is(err, base62.ErrOverflow):
		return "overflow"
	case errors.Is(err, base62.ErrMalformedTerminator):
		return "malformed_terminator"
	default:
		return "bad_request"
	}
}

func observe(op string, err error) {
	OperationsTotal.WithLabelValues(op, resultLabel(err)).Inc()
}

// MetricsHandler exposes Registry for scraping.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
