// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simulate

import "github.com/prometheus/client_golang/prometheus"

// metrics are the optional diagnostics a Driver exposes when given a
// prometheus.Registerer: a handful of named Counter/Gauge instruments
// registered once up front and updated inline in the round loop.
type metrics struct {
	roundsRun    prometheus.Counter
	decidedNodes prometheus.Gauge
}

func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		roundsRun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simulate_rounds_run_total",
			Help: "Number of rounds/chunks/recorded iterations executed.",
		}),
		decidedNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "simulate_decided_nodes",
			Help: "Number of honest nodes that have finalized an opinion as of the last recorded round.",
		}),
	}
	if err := registerer.Register(m.roundsRun); err != nil {
		return nil, err
	}
	if err := registerer.Register(m.decidedNodes); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *metrics) recordRound(decided int) {
	if m == nil {
		return
	}
	m.roundsRun.Inc()
	m.decidedNodes.Set(float64(decided))
}
