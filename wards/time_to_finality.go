// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wards

// timeToFinality stops once the round index reaches a threshold,
// regardless of whether nodes have converged.
type timeToFinality struct {
	threshold int
}

// NewTimeToFinality constructs a time_to_finality ward.
func NewTimeToFinality(threshold int) Ward {
	return &timeToFinality{threshold: threshold}
}

func (w *timeToFinality) ShouldStop(history []Snapshot) bool {
	if len(history) == 0 {
		return false
	}
	return history[len(history)-1].Round >= w.threshold
}
