// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package modifiers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logos-co/consensus-research/rng"
	"github.com/logos-co/consensus-research/vote"
)

func TestRandomDropZeroRateIsIdentity(t *testing.T) {
	m := NewRandomDrop(0, rng.New(1))
	in := []vote.Vote{vote.Yes, vote.No, vote.Yes}
	out := m.Apply(in)
	require.Equal(t, in, out)
}

func TestRandomDropFullRateDropsEverything(t *testing.T) {
	m := NewRandomDrop(1, rng.New(1))
	in := []vote.Vote{vote.Yes, vote.No, vote.Yes}
	out := m.Apply(in)
	for _, v := range out {
		require.Equal(t, vote.None, v)
	}
}

func TestRandomDropPreservesLength(t *testing.T) {
	m := NewRandomDrop(0.5, rng.New(7))
	in := make([]vote.Vote, 50)
	for i := range in {
		in[i] = vote.Yes
	}
	out := m.Apply(in)
	require.Len(t, out, len(in))
}

func TestRandomDropIsDeterministicForAFixedSource(t *testing.T) {
	in := make([]vote.Vote, 20)
	for i := range in {
		in[i] = vote.Yes
	}

	m1 := NewRandomDrop(0.5, rng.New(42))
	m2 := NewRandomDrop(0.5, rng.New(42))
	require.Equal(t, m1.Apply(in), m2.Apply(in))
}

func TestChainAppliesEveryModifier(t *testing.T) {
	c := Chain{
		NewRandomDrop(1, rng.New(1)),
		NewRandomDrop(0, rng.New(1)),
	}
	out := c.Apply([]vote.Vote{vote.Yes, vote.No})
	require.Equal(t, []vote.Vote{vote.None, vote.None}, out)
}

func TestEmptyChainIsIdentity(t *testing.T) {
	var c Chain
	in := []vote.Vote{vote.Yes, vote.No, vote.None}
	require.Equal(t, in, c.Apply(in))
}
