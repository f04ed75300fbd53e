// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PaymentsProcessed counts committed settlements by resulting status.
	PaymentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "unguka_payments_processed_total",
		Help: "Committed payment settlements by resulting payment status.",
	}, []string{"status"})

	// SettlementFailures counts aborted settlements by failing stage.
	SettlementFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "unguka_settlement_failures_total",
		Help: "Settlement attempts rolled back, by failing stage.",
	}, []string{"stage"})

	// SummaryRequests counts served payment summaries.
	SummaryRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "unguka_payment_summaries_total",
		Help: "Payment summary views served.",
	})
)
