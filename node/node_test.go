// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logos-co/consensus-research/consensus"
	"github.com/logos-co/consensus-research/rng"
	"github.com/logos-co/consensus-research/vote"
)

type stubBackend struct {
	pref    vote.Vote
	decided bool
}

func (s *stubBackend) Preference() vote.Vote                 { return s.pref }
func (s *stubBackend) Decided() bool                          { return s.decided }
func (s *stubBackend) Step(sample consensus.Sample)            {}
func (s *stubBackend) Clone() consensus.Backend                { cp := *s; return &cp }

func TestHonestOpinionAndDecided(t *testing.T) {
	n := NewHonest(0, &stubBackend{pref: vote.Yes, decided: true})
	require.Equal(t, vote.Yes, n.Opinion())
	require.True(t, n.Decided())
}

func TestInfantileOpinionIsFixedInternalNotLie(t *testing.T) {
	n := NewInfantile(1, vote.Yes)
	require.Equal(t, vote.Yes, n.Opinion())
	require.False(t, n.Decided())

	view := NewView([]Node{n})
	require.Equal(t, vote.No, n.Answer(view, rng.New(1)))
}

func TestByzantineNeverDecides(t *testing.T) {
	require.False(t, NewRandom(0).Decided())
	require.False(t, NewOmniscient(0).Decided())
}

func TestOmniscientReturnsMinorityAndBreaksTiesToNo(t *testing.T) {
	nodes := []Node{
		NewHonest(0, &stubBackend{pref: vote.Yes}),
		NewHonest(1, &stubBackend{pref: vote.Yes}),
		NewHonest(2, &stubBackend{pref: vote.No}),
		NewOmniscient(3),
	}
	view := NewView(nodes)
	// Yes=2, No=1 -> minority is No.
	require.Equal(t, vote.No, nodes[3].Answer(view, rng.New(1)))

	tied := []Node{
		NewHonest(0, &stubBackend{pref: vote.Yes}),
		NewHonest(1, &stubBackend{pref: vote.No}),
		NewOmniscient(2),
	}
	view = NewView(tied)
	require.Equal(t, vote.No, tied[2].Answer(view, rng.New(1)))
}

func TestOmniscientNeverReturnsNone(t *testing.T) {
	nodes := []Node{NewOmniscient(0)}
	view := NewView(nodes)
	ans := nodes[0].Answer(view, rng.New(1))
	require.NotEqual(t, vote.None, ans)
}

func TestRandomAnswerStaysInRange(t *testing.T) {
	src := rng.New(2)
	n := NewRandom(0)
	view := View{}
	for i := 0; i < 200; i++ {
		ans := n.Answer(view, src)
		require.Contains(t, []vote.Vote{vote.None, vote.Yes, vote.No}, ans)
	}
}
