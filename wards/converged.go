// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wards

// converged stops once the fraction of decided nodes reaches ratio.
type converged struct {
	ratio float64
}

// NewConverged constructs a converged ward.
func NewConverged(ratio float64) Ward {
	return &converged{ratio: ratio}
}

func (w *converged) ShouldStop(history []Snapshot) bool {
	if len(history) == 0 {
		return false
	}
	latest := history[len(history)-1]
	if len(latest.Decided) == 0 {
		return false
	}
	decided := 0
	for _, d := range latest.Decided {
		if d {
			decided++
		}
	}
	return float64(decided)/float64(len(latest.Decided)) >= w.ratio
}
