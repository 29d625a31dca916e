// Package metrics exposes the POS counters to Prometheus.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/domain"
)

// Metrics owns its registry so tests and multiple servers never collide.
// All methods are no-ops on a nil *Metrics.
type Metrics struct {
	registry         *prometheus.Registry
	salesCompleted   prometheus.Counter
	saleAmount       prometheus.Histogram
	checkoutFailures *prometheus.CounterVec
	provisioning     *prometheus.CounterVec
}

// New registers the POS collectors plus the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		salesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kirana_sales_completed_total",
			Help: "Sales committed at the counter.",
		}),
		saleAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kirana_sale_amount_rupees",
			Help:    "Total amount of committed sales in rupees.",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}),
		checkoutFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kirana_checkout_failures_total",
			Help: "Checkouts rejected or rolled back, by reason.",
		}, []string{"reason"}),
		provisioning: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kirana_provisioning_total",
			Help: "Store owner provisioning attempts, by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.salesCompleted, m.saleAmount, m.checkoutFailures, m.provisioning,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SaleCompleted records one committed sale.
func (m *Metrics) SaleCompleted(total decimal.Decimal) {
	if m == nil {
		return
	}
	m.salesCompleted.Inc()
	m.saleAmount.Observe(total.InexactFloat64())
}

// CheckoutFailed records a failed checkout under a reason derived from err.
func (m *Metrics) CheckoutFailed(err error) {
	if m == nil {
		return
	}
	m.checkoutFailures.WithLabelValues(FailureReason(err)).Inc()
}

// Provisioned records a provisioning attempt.
func (m *Metrics) Provisioned(outcome string) {
	if m == nil {
		return
	}
	m.provisioning.WithLabelValues(outcome).Inc()
}

// FailureReason maps a checkout error to a low-cardinality label.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidDiscount), errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrForbidden):
		return "auth"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
