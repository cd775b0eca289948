// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wards

import "github.com/logos-co/consensus-research/vote"

// Granularity controls which recorded snapshots a stabilised ward
// compares.
type Granularity struct {
	// Stride is 1 for the "rounds" granularity (inspect every recorded
	// snapshot) or the configured chunk c for "iterations({chunk})"
	// (inspect only every c-th recorded snapshot). Useful under Glauber,
	// where per-iteration variance between consecutively recorded
	// columns is high.
	Stride int
}

// Rounds is the "rounds" stabilised granularity: inspect every
// recorded snapshot.
func Rounds() Granularity { return Granularity{Stride: 1} }

// Iterations is the "iterations({chunk})" stabilised granularity:
// inspect only every chunk-th recorded snapshot.
func Iterations(chunk int) Granularity { return Granularity{Stride: chunk} }

// stabilised stops once the last buffer snapshots, taken at the
// configured granularity, are pairwise identical.
type stabilised struct {
	buffer      int
	granularity Granularity
}

// NewStabilised constructs a stabilised ward.
func NewStabilised(buffer int, granularity Granularity) Ward {
	return &stabilised{buffer: buffer, granularity: granularity}
}

func (w *stabilised) ShouldStop(history []Snapshot) bool {
	stride := w.granularity.Stride
	if stride < 1 {
		stride = 1
	}

	needed := w.buffer
	if needed < 2 {
		return needed == 1 && len(history) >= 1
	}

	var sampled []Snapshot
	for i := len(history) - 1; i >= 0 && len(sampled) < needed; i -= stride {
		sampled = append(sampled, history[i])
	}
	if len(sampled) < needed {
		return false
	}

	first := sampled[0].Opinions
	for _, s := range sampled[1:] {
		if !opinionsEqual(first, s.Opinions) {
			return false
		}
	}
	return true
}

func opinionsEqual(a, b []vote.Vote) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
