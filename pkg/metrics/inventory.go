package metrics

import (
	"github.com/angelmondragon/kitchen-inventory-backend/pkg/enums"
	"github.com/prometheus/client_golang/prometheus"
)

// InventoryMetrics counts catalog and stock mutations.
type InventoryMetrics struct {
	mutations  *prometheus.CounterVec
	reassigned prometheus.Counter
}

// NewInventoryMetrics registers the inventory metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kitchen_mutations_total",
		Help: "Update and delete attempts by entity, operation and outcome.",
	}, []string{"entity", "op", "outcome"})
	reassigned := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kitchen_items_reassigned_total",
		Help: "Inventory items moved to the DELETED product when their product was removed.",
	})
	reg.MustRegister(mutations, reassigned)
	return &InventoryMetrics{
		mutations:  mutations,
		reassigned: reassigned,
	}
}

// ObserveMutation records the outcome of an update or delete.
func (m *InventoryMetrics) ObserveMutation(entity, op string, outcome enums.MutationOutcome) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(entity), normalizeLabel(op), normalizeLabel(outcome.String())).Inc()
}

// AddReassigned adds the number of items re-pointed by a product deletion.
func (m *InventoryMetrics) AddReassigned(count int64) {
	if m == nil || m.reassigned == nil || count <= 0 {
		return
	}
	m.reassigned.Add(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
