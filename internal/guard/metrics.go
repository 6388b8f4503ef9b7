package guard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var decisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "folio",
		Subsystem: "route_guard",
		Name:      "decisions_total",
		Help:      "Route guard decisions by action and reason.",
	},
	[]string{"action", "reason"},
)

func observe(d Decision) {
	decisionsTotal.WithLabelValues(d.Action.String(), string(d.Reason)).Inc()
}
