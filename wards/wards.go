// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wards implements the simulation's stop-condition evaluators:
// small, single-method policy objects consulted by the driver after
// every round, composing disjunctively (any stop -> stop). Each ward is
// its own type behind one interface rather than a single
// enum-dispatched function.
package wards

import "github.com/logos-co/consensus-research/vote"

// Snapshot is the read-only per-round state a ward inspects. It mirrors
// the driver's bookkeeping, not the full node population, so wards never
// need access to consensus-backend internals.
type Snapshot struct {
	// Round is the index of the round just completed (0-based).
	Round int
	// Iteration is the Glauber iteration count at this snapshot (equal
	// to Round for Sync/Async styles, where one snapshot is recorded
	// per round).
	Iteration int
	// Opinions is this round's recorded opinion for every node, in id
	// order -- the same slice the result table's newest column holds.
	Opinions []vote.Vote
	// Decided is this round's per-node decided flag, in id order.
	Decided []bool
}

// Ward evaluates driver state after a round and decides whether the run
// should stop.
type Ward interface {
	ShouldStop(history []Snapshot) bool
}

// Chain composes wards disjunctively: any ward signaling stop ends the
// run.
type Chain []Ward

// ShouldStop reports whether any ward in the chain wants to stop.
func (c Chain) ShouldStop(history []Snapshot) bool {
	for _, w := range c {
		if w.ShouldStop(history) {
			return true
		}
	}
	return false
}
