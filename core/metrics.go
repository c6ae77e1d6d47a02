// SPDX-License-Identifier: MIT

package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// invalidationsTotal counts quantities that transitioned to Invalid.
	invalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bassgraph_invalidations_total",
		Help: "Quantities marked Invalid by propagation",
	})

	// recomputesTotal counts Update calls by result ("ok" or "error").
	recomputesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bassgraph_recomputes_total",
		Help: "Formula recomputations by result",
	}, []string{"result"})

	// cascadesTotal counts parents refreshed through UpdateParents.
	cascadesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bassgraph_cascades_total",
		Help: "Parents recomputed by UpdateParents cascades",
	})
)

const (
	resultOK    = "ok"
	resultError = "error"
)

func (g *Graph) countInvalidation() {
	g.stats.invalidateVisits++
	if g.metrics {
		invalidationsTotal.Inc()
	}
}

func (g *Graph) countRecompute(err error) {
	g.stats.recomputes++
	result := resultOK
	if err != nil {
		g.stats.recomputeErrors++
		result = resultError
	}
	if g.metrics {
		recomputesTotal.WithLabelValues(result).Inc()
	}
}

func (g *Graph) countCascade() {
	g.stats.cascades++
	if g.metrics {
		cascadesTotal.Inc()
	}
}
