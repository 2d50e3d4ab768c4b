package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActionsExecuted counts executor outcomes per action kind
	ActionsExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_hub_actions_executed_total",
			Help: "Total number of attested actions executed, by outcome",
		},
		[]string{"kind", "status", "details"},
	)

	ActionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "settlement_hub_action_duration_seconds",
			Help:    "Attested action execution duration in seconds, including retries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// TransactionRetries counts transactions re-run after a deadlock or serialization failure
	TransactionRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_hub_transaction_retries_total",
			Help: "Total number of aborted database transactions retried",
		},
		[]string{"kind"},
	)

	WithdrawalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_hub_withdrawal_requests_total",
			Help: "Total number of withdrawal requests issued",
		},
		[]string{"vm_type"},
	)

	ManualUnlocks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlement_hub_manual_unlocks_total",
		Help: "Total number of deposit locks released by request",
	})

	MessagesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_hub_messages_received_total",
			Help: "Total number of queue messages received",
		},
		[]string{"subject"},
	)

	// MessagesSettled counts queue messages per acknowledgement (ack, nak, term)
	MessagesSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_hub_messages_settled_total",
			Help: "Total number of queue messages acknowledged, by acknowledgement",
		},
		[]string{"ack"},
	)

	RateLimitedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "settlement_hub_rate_limited_requests_total",
		Help: "Total number of API requests rejected by the rate limiter",
	})

	// SettlementsPublished counts settlement events published per outcome (published, failed)
	SettlementsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_hub_settlements_published_total",
			Help: "Total number of settlement events published to the results stream",
		},
		[]string{"outcome"},
	)
)
