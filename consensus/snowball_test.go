// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consensus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logos-co/consensus-research/vote"
)

func constSample(votes ...vote.Vote) Sample {
	return func(k int) []vote.Vote { return votes }
}

func TestSnowballSwitchesPreferenceAndFinalizes(t *testing.T) {
	params := SnowballParams{SampleSize: 4, QuorumSize: 2, DecisionThreshold: 2}
	sb := NewSnowball(params, vote.None)

	sb.Step(constSample(vote.Yes, vote.Yes, vote.No, vote.None))
	require.Equal(t, vote.Yes, sb.Preference())
	require.False(t, sb.Decided())

	sb.Step(constSample(vote.Yes, vote.Yes, vote.Yes, vote.No))
	require.Equal(t, vote.Yes, sb.Preference())
	require.True(t, sb.Decided())
}

func TestSnowballResetsConfidenceOnMiss(t *testing.T) {
	params := SnowballParams{SampleSize: 4, QuorumSize: 3, DecisionThreshold: 2}
	sb := NewSnowball(params, vote.Yes)

	sb.Step(constSample(vote.Yes, vote.Yes, vote.Yes, vote.No))
	require.False(t, sb.Decided())

	// This round fails to reach quorum for either color; confidence resets.
	sb.Step(constSample(vote.Yes, vote.No, vote.None, vote.None))
	require.False(t, sb.Decided())

	sb.Step(constSample(vote.Yes, vote.Yes, vote.Yes, vote.None))
	require.False(t, sb.Decided())
	sb.Step(constSample(vote.Yes, vote.Yes, vote.Yes, vote.None))
	require.True(t, sb.Decided())
}

func TestSnowballDecidedNodeIsSticky(t *testing.T) {
	params := SnowballParams{SampleSize: 2, QuorumSize: 1, DecisionThreshold: 1}
	sb := NewSnowball(params, vote.Yes)
	sb.Step(constSample(vote.Yes, vote.Yes))
	require.True(t, sb.Decided())

	sb.Step(constSample(vote.No, vote.No))
	require.Equal(t, vote.Yes, sb.Preference(), "decided node must never change opinion")
}

func TestSnowballLowAlphaTieBreakFavorsCurrentOpinion(t *testing.T) {
	// K=4, alpha=2 <= K/2: a tie (2 yes, 2 no) is possible.
	params := SnowballParams{SampleSize: 4, QuorumSize: 2, DecisionThreshold: 5}
	sb := NewSnowball(params, vote.No)
	sb.Step(constSample(vote.Yes, vote.Yes, vote.No, vote.No))
	require.Equal(t, vote.No, sb.Preference())
}

func TestSnowballLowAlphaTieBreakFallsBackToYesFromNone(t *testing.T) {
	params := SnowballParams{SampleSize: 4, QuorumSize: 2, DecisionThreshold: 5}
	sb := NewSnowball(params, vote.None)
	sb.Step(constSample(vote.Yes, vote.Yes, vote.No, vote.No))
	require.Equal(t, vote.Yes, sb.Preference())
}

func TestSnowballClone(t *testing.T) {
	params := SnowballParams{SampleSize: 4, QuorumSize: 2, DecisionThreshold: 2}
	sb := NewSnowball(params, vote.Yes)
	sb.Step(constSample(vote.Yes, vote.Yes, vote.No, vote.None))

	clone := sb.Clone()
	sb.Step(constSample(vote.Yes, vote.Yes, vote.Yes, vote.None))
	require.True(t, sb.Decided())
	require.False(t, clone.Decided(), "clone must not observe later mutation")
}
