package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	DeedsRegistered        prometheus.Counter
	DeedsTransferred       prometheus.Counter
	VerificationsProcessed *prometheus.CounterVec
	LedgerDegraded         prometheus.Counter
	DocstoreDegraded       prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		DeedsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "land_registry_deeds_registered_total",
			Help: "Total number of deeds registered",
		}),
		DeedsTransferred: promauto.NewCounter(prometheus.CounterOpts{
			Name: "land_registry_deeds_transferred_total",
			Help: "Total number of ownership transfers committed",
		}),
		VerificationsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "land_registry_verifications_processed_total",
			Help: "Total number of verification requests decided, by result",
		}, []string{"result"}),
		LedgerDegraded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "land_registry_ledger_degraded_total",
			Help: "Total number of operations served by the mock ledger",
		}),
		DocstoreDegraded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "land_registry_docstore_degraded_total",
			Help: "Total number of documents stored by the mock document store",
		}),
	}
}

// IncrementDeedsRegistered increments the registered-deeds counter by 1.
func (m *Metrics) IncrementDeedsRegistered() {
	m.DeedsRegistered.Inc()
}

// IncrementDeedsTransferred increments the transfers counter by 1.
func (m *Metrics) IncrementDeedsTransferred() {
	m.DeedsTransferred.Inc()
}

// IncrementVerificationsProcessed counts one decided request by result.
func (m *Metrics) IncrementVerificationsProcessed(result string) {
	m.VerificationsProcessed.WithLabelValues(result).Inc()
}

// IncrementLedgerDegraded counts one ledger call that fell back to the mock.
func (m *Metrics) IncrementLedgerDegraded() {
	m.LedgerDegraded.Inc()
}

// IncrementDocstoreDegraded counts one document write served by the mock.
func (m *Metrics) IncrementDocstoreDegraded() {
	m.DocstoreDegraded.Inc()
}
