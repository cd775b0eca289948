// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consensus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logos-co/consensus-research/vote"
)

func claroParams() ClaroParams {
	return ClaroParams{
		EvidenceAlpha1: 0.6,
		EvidenceAlpha2: 0.8,
		ConfidenceBeta: 2,
		LookAhead:      2,
		Query: QueryConfig{
			QuerySize:        10,
			InitialQuerySize: 10,
			QueryMultiplier:  2,
			MaxMultiplier:    2,
		},
	}
}

func unanimous(v vote.Vote, n int) Sample {
	votes := make([]vote.Vote, n)
	for i := range votes {
		votes[i] = v
	}
	return func(k int) []vote.Vote {
		out := make([]vote.Vote, k)
		for i := range out {
			out[i] = v
		}
		return out
	}
}

func TestClaroAccruesEvidenceAndDecides(t *testing.T) {
	params := claroParams()
	c := NewClaro(params, vote.None)

	// 9/10 Yes clears both alpha1 (0.6) and alpha2 (0.8): confidence grows.
	votes := unanimous(vote.Yes, 10)
	sample := func(k int) []vote.Vote {
		out := make([]vote.Vote, k)
		for i := 0; i < k && i < 9; i++ {
			out[i] = vote.Yes
		}
		for i := 9; i < k; i++ {
			out[i] = vote.No
		}
		return out
	}
	_ = votes

	c.Step(sample)
	require.Equal(t, vote.Yes, c.Preference())
	require.False(t, c.Decided())

	c.Step(sample)
	require.Equal(t, vote.Yes, c.Preference())
	require.True(t, c.Decided())
}

func TestClaroNoEvidenceResetsConfidenceAndBreaksWindow(t *testing.T) {
	params := claroParams()
	c := NewClaro(params, vote.None).(*claro)

	strongYes := func(k int) []vote.Vote {
		out := make([]vote.Vote, k)
		for i := 0; i < k; i++ {
			if i*10 < k*9 {
				out[i] = vote.Yes
			} else {
				out[i] = vote.No
			}
		}
		return out
	}
	c.Step(strongYes)
	require.Equal(t, 1, c.confidence)

	// An even split reaches neither alpha1 nor alpha2 at any query size up
	// to the cap: this round contributes no evidence.
	split := func(k int) []vote.Vote {
		out := make([]vote.Vote, k)
		for i := range out {
			if i%2 == 0 {
				out[i] = vote.Yes
			} else {
				out[i] = vote.No
			}
		}
		return out
	}
	c.Step(split)
	require.Equal(t, 0, c.confidence)

	c.Step(strongYes)
	c.Step(strongYes)
	require.True(t, c.windowAgrees())
}

func TestClaroDecidedNodeIsSticky(t *testing.T) {
	params := claroParams()
	params.ConfidenceBeta = 1
	params.LookAhead = 1
	c := NewClaro(params, vote.Yes)

	allYes := func(k int) []vote.Vote {
		out := make([]vote.Vote, k)
		for i := range out {
			out[i] = vote.Yes
		}
		return out
	}
	c.Step(allYes)
	require.True(t, c.Decided())

	allNo := func(k int) []vote.Vote {
		out := make([]vote.Vote, k)
		for i := range out {
			out[i] = vote.No
		}
		return out
	}
	c.Step(allNo)
	require.Equal(t, vote.Yes, c.Preference(), "decided node must never change opinion")
}

func TestClaroEscalatesQuerySizeOnIndecisiveRound(t *testing.T) {
	params := claroParams()
	params.Query = QueryConfig{QuerySize: 4, InitialQuerySize: 4, QueryMultiplier: 2, MaxMultiplier: 4}
	c := NewClaro(params, vote.None).(*claro)

	var sizesSeen []int
	sample := func(k int) []vote.Vote {
		sizesSeen = append(sizesSeen, k)
		// Never resolves: an exact even split at every (even) query size,
		// forcing escalation all the way to the cap.
		out := make([]vote.Vote, k)
		for i := range out {
			if i%2 == 0 {
				out[i] = vote.Yes
			} else {
				out[i] = vote.No
			}
		}
		return out
	}

	winner, reached := c.query(sample)
	require.Equal(t, vote.None, winner)
	require.False(t, reached)
	require.True(t, len(sizesSeen) > 1, "must escalate beyond the initial query size")
	require.Equal(t, 4, sizesSeen[0])
}

func TestClaroClone(t *testing.T) {
	params := claroParams()
	c := NewClaro(params, vote.None)

	strongYes := func(k int) []vote.Vote {
		out := make([]vote.Vote, k)
		for i := 0; i < k; i++ {
			if i*10 < k*9 {
				out[i] = vote.Yes
			} else {
				out[i] = vote.No
			}
		}
		return out
	}
	c.Step(strongYes)

	clone := c.Clone()
	c.Step(strongYes)
	require.True(t, c.Decided())
	require.False(t, clone.Decided(), "clone must not observe later mutation")
}
