package ecdsasig

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signaturesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecdsasig",
		Name:      "signatures_total",
		Help:      "total number of canonical signatures produced",
	}, []string{"backend"})
	signAttemptsHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ecdsasig",
		Name:      "sign_attempts",
		Help:      "number of nonce draws needed to reach a canonical signature",
		Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128},
	}, []string{"backend"})
	verificationsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecdsasig",
		Name:      "verifications_total",
		Help:      "total number of signature verifications by result",
	}, []string{"backend", "result"})
)

const (
	resultValid   = "valid"
	resultInvalid = "invalid"
)
