package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CheckoutTotal counts checkout attempts by outcome.
	CheckoutTotal *prometheus.CounterVec
	// PaymentSettlementTotal counts settlement attempts per payment method and outcome.
	PaymentSettlementTotal *prometheus.CounterVec
	// OrderTransitionsTotal counts order status transitions by target status.
	OrderTransitionsTotal *prometheus.CounterVec
	// NotificationsTotal counts observer deliveries by outcome.
	NotificationsTotal *prometheus.CounterVec
	// ShipmentsTotal counts ship actions by outcome.
	ShipmentsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers shop-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CheckoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Count of checkout attempts by outcome.",
		}, []string{"result"})
		PaymentSettlementTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_settlement_total",
			Help:      "Count of payment settlement attempts by method and outcome.",
		}, []string{"method", "result"})
		OrderTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transition_total",
			Help:      "Count of order status transitions by target status.",
		}, []string{"status"})
		NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_total",
			Help:      "Count of order notifications delivered to observers by outcome.",
		}, []string{"result"})
		ShipmentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipment_total",
			Help:      "Count of ship actions by outcome.",
		}, []string{"result"})

		mustRegisterCounterVec(reg, &CheckoutTotal)
		mustRegisterCounterVec(reg, &PaymentSettlementTotal)
		mustRegisterCounterVec(reg, &OrderTransitionsTotal)
		mustRegisterCounterVec(reg, &NotificationsTotal)
		mustRegisterCounterVec(reg, &ShipmentsTotal)
	})
}

// Inc increments the counter for the given labels when it has been registered.
func Inc(counter *prometheus.CounterVec, labels ...string) {
	if counter == nil {
		return
	}
	counter.WithLabelValues(labels...).Inc()
}

// Result maps an error to the "ok"/"error" label used across domain counters.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func mustRegisterCounterVec(reg prometheus.Registerer, counter **prometheus.CounterVec) {
	if err := reg.Register(*counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				*counter = existing
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
