package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSent     = "sent"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

var (
	sendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linguachat_relay_sends_total",
			Help: "Total number of send operations by outcome",
		},
		[]string{"outcome"},
	)

	translationFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "linguachat_relay_translation_fallbacks_total",
			Help: "Sends that stored the original text because translation failed",
		},
	)
)
