package resilience

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once

	breakerState       *prometheus.GaugeVec
	breakerTransitions *prometheus.CounterVec
)

// MustRegisterMetrics registers the breaker collectors once. Breakers created
// before registration simply do not report.
func MustRegisterMetrics(namespace string, reg prometheus.Registerer) {
	metricsOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		state := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "breaker_state",
			Help:      "Current breaker state: 0=closed,1=open,2=half-open",
		}, []string{"target"})
		transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breaker_transition_total",
			Help:      "Count of breaker state transitions",
		}, []string{"target", "from", "to"})
		reg.MustRegister(state, transitions)
		breakerState = state
		breakerTransitions = transitions
	})
}

func recordState(target string, state State) {
	if breakerState == nil {
		return
	}
	breakerState.WithLabelValues(target).Set(float64(state))
}

func recordTransition(target string, from, to State) {
	if breakerTransitions == nil {
		return
	}
	breakerTransitions.WithLabelValues(target, from.String(), to.String()).Inc()
}
