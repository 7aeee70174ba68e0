// Package metrics defines the Prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClubsCreated counts clubs created since process start.
	ClubsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chamapool_clubs_created_total",
		Help: "Number of clubs created.",
	})

	// InvestmentsScheduled counts obligations scheduled.
	InvestmentsScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chamapool_investments_scheduled_total",
		Help: "Number of investment obligations scheduled.",
	})

	// PaymentsSettled counts successful settlements.
	PaymentsSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chamapool_payments_settled_total",
		Help: "Number of payments settled.",
	})

	// PaymentFailures counts rejected payments by reason.
	PaymentFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chamapool_payment_failures_total",
		Help: "Number of rejected payments, by rejection reason.",
	}, []string{"reason"})

	// Withdrawals counts treasury withdrawals.
	Withdrawals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chamapool_withdrawals_total",
		Help: "Number of treasury withdrawals.",
	})
)
