package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shopping"

// Recorder exports shopping engine activity as Prometheus metrics. It
// satisfies shopping.Observer.
type Recorder struct {
	operations  *prometheus.CounterVec
	items       *prometheus.GaugeVec
	cartRecipes prometheus.Gauge
}

// NewRecorder registers the shopping metrics on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of shopping list mutations by operation",
			},
			[]string{"op"},
		),
		items: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "items",
				Help:      "Current number of shopping items by source",
			},
			[]string{"source"},
		),
		cartRecipes: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cart_recipes",
				Help:      "Current number of recipes in the cart",
			},
		),
	}
}

// ObserveOperation counts one mutation.
func (r *Recorder) ObserveOperation(op string) {
	r.operations.WithLabelValues(op).Inc()
}

// ObserveState records the list and cart sizes after a mutation.
func (r *Recorder) ObserveState(manualItems, recipeItems, cartRecipes int) {
	r.items.WithLabelValues("manual").Set(float64(manualItems))
	r.items.WithLabelValues("recipe").Set(float64(recipeItems))
	r.cartRecipes.Set(float64(cartRecipes))
}
