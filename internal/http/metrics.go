package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts requests and their latency per endpoint and outcome.
// A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the client collectors with reg. Collectors already
// registered by another client are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rocketchat",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Rocket.Chat API requests by method, endpoint and outcome.",
	}, []string{"method", "endpoint", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rocketchat",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Rocket.Chat API request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	var err error

	requests, err = register(reg, requests)
	if err != nil {
		return nil, err
	}

	duration, err = register(reg, duration)
	if err != nil {
		return nil, err
	}

	return &Metrics{requests: requests, duration: duration}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return collector, fmt.Errorf("registering metrics: %w", err)
}

func (m *Metrics) observe(method, endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}

	label := endpointLabel(endpoint)

	m.requests.WithLabelValues(method, label, outcome).Inc()
	m.duration.WithLabelValues(method, label).Observe(elapsed.Seconds())
}

// endpointLabel drops path arguments such as the room id of rooms.upload.
func endpointLabel(endpoint string) string {
	name, _, _ := strings.Cut(endpoint, "/")

	return name
}
