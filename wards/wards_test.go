// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wards

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logos-co/consensus-research/vote"
)

func snap(round int, opinions ...vote.Vote) Snapshot {
	decided := make([]bool, len(opinions))
	for i, v := range opinions {
		decided[i] = v != vote.None
	}
	return Snapshot{Round: round, Iteration: round, Opinions: opinions, Decided: decided}
}

func TestTimeToFinalityStopsAtThreshold(t *testing.T) {
	w := NewTimeToFinality(3)
	require.False(t, w.ShouldStop([]Snapshot{snap(2, vote.Yes)}))
	require.True(t, w.ShouldStop([]Snapshot{snap(3, vote.Yes)}))
	require.True(t, w.ShouldStop([]Snapshot{snap(4, vote.Yes)}))
}

func TestTimeToFinalityEmptyHistoryNeverStops(t *testing.T) {
	w := NewTimeToFinality(0)
	require.False(t, w.ShouldStop(nil))
}

func TestStabilisedRoundsStopsWhenBufferIdentical(t *testing.T) {
	w := NewStabilised(3, Rounds())

	history := []Snapshot{
		snap(0, vote.Yes, vote.No),
		snap(1, vote.Yes, vote.Yes),
		snap(2, vote.Yes, vote.Yes),
	}
	require.False(t, w.ShouldStop(history))

	history = append(history, snap(3, vote.Yes, vote.Yes))
	require.True(t, w.ShouldStop(history))
}

func TestStabilisedRoundsDetectsNonIdenticalTail(t *testing.T) {
	w := NewStabilised(2, Rounds())
	history := []Snapshot{
		snap(0, vote.Yes),
		snap(1, vote.No),
	}
	require.False(t, w.ShouldStop(history))
}

func TestStabilisedIterationsChunkSamplesStride(t *testing.T) {
	w := NewStabilised(2, Iterations(3))

	// Only every 3rd recorded snapshot is compared: indices 5 and 2 here
	// (both Yes), even though the intervening snapshots differ.
	history := []Snapshot{
		snap(0, vote.Yes),
		snap(1, vote.No),
		snap(2, vote.Yes),
		snap(3, vote.No),
		snap(4, vote.No),
		snap(5, vote.Yes),
	}
	require.True(t, w.ShouldStop(history))
}

func TestConvergedStopsAtRatio(t *testing.T) {
	w := NewConverged(0.5)

	history := []Snapshot{snap(0, vote.Yes, vote.None, vote.None, vote.None)}
	require.False(t, w.ShouldStop(history))

	history = []Snapshot{snap(1, vote.Yes, vote.No, vote.Yes, vote.None)}
	require.True(t, w.ShouldStop(history))
}

func TestChainStopsIfAnyWardStops(t *testing.T) {
	c := Chain{NewTimeToFinality(100), NewConverged(1.0)}
	history := []Snapshot{snap(1, vote.Yes, vote.Yes)}
	require.True(t, c.ShouldStop(history))
}

func TestChainContinuesIfNoWardStops(t *testing.T) {
	c := Chain{NewTimeToFinality(100), NewConverged(1.0)}
	history := []Snapshot{snap(1, vote.Yes, vote.None)}
	require.False(t, c.ShouldStop(history))
}
