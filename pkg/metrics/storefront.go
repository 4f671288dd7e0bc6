package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records counters for cart and checkout activity.
type StorefrontMetrics struct {
	ordersCreated      *prometheus.CounterVec
	cartRecalculations prometheus.Counter
	checkoutConflicts  prometheus.Counter
	checkoutDuration   prometheus.Histogram
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders created, partitioned by buying type.",
	}, []string{"buying_type"})
	cartRecalculations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_recalculations_total",
		Help: "Cart total recalculations after item mutations.",
	})
	checkoutConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_conflicts_total",
		Help: "Checkout attempts rejected because the cart was already ordered.",
	})
	checkoutDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(ordersCreated, cartRecalculations, checkoutConflicts, checkoutDuration)
	return &StorefrontMetrics{
		ordersCreated:      ordersCreated,
		cartRecalculations: cartRecalculations,
		checkoutConflicts:  checkoutConflicts,
		checkoutDuration:   checkoutDuration,
	}
}

// IncOrderCreated increments the created-order counter for the buying type.
func (m *StorefrontMetrics) IncOrderCreated(buyingType string) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.WithLabelValues(normalizeLabel(buyingType)).Inc()
}

// IncCartRecalculation increments the recalculation counter.
func (m *StorefrontMetrics) IncCartRecalculation() {
	if m == nil || m.cartRecalculations == nil {
		return
	}
	m.cartRecalculations.Inc()
}

// IncCheckoutConflict increments the already-ordered conflict counter.
func (m *StorefrontMetrics) IncCheckoutConflict() {
	if m == nil || m.checkoutConflicts == nil {
		return
	}
	m.checkoutConflicts.Inc()
}

// ObserveCheckoutDuration records the duration of a checkout transaction.
func (m *StorefrontMetrics) ObserveCheckoutDuration(duration time.Duration) {
	if m == nil || m.checkoutDuration == nil {
		return
	}
	m.checkoutDuration.Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
