package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// Metrics groups the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	cartItemsAdded  prometheus.Counter
	cartRejections  *prometheus.CounterVec
	checkouts       *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		cartItemsAdded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_items_added_total",
			Help:      "Line items added to carts.",
		}),
		cartRejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_rejections_total",
			Help:      "Add-to-cart attempts rejected, by reason code.",
		}, []string{"code"}),
		checkouts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Checkout submissions by result.",
		}, []string{"result"}),
		backendDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of calls to the storefront backend.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

func (m *Metrics) ItemAdded() {
	if m == nil {
		return
	}
	m.cartItemsAdded.Inc()
}

func (m *Metrics) ItemRejected(code string) {
	if m == nil {
		return
	}
	m.cartRejections.WithLabelValues(code).Inc()
}

func (m *Metrics) Checkout(result string) {
	if m == nil {
		return
	}
	m.checkouts.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveBackend(endpoint string, d time.Duration) {
	if m == nil {
		return
	}
	m.backendDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}
