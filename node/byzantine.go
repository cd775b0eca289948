// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"github.com/logos-co/consensus-research/rng"
	"github.com/logos-co/consensus-research/vote"
)

// View is a read-only snapshot of every node's current opinion for one
// round, reconstructed before stepping. Omniscient nodes consult it to
// choose an adversarial answer.
type View struct {
	opinions []vote.Vote
	roles    []Role
}

// NewView builds a network view from the current population.
func NewView(nodes []Node) View {
	opinions := make([]vote.Vote, len(nodes))
	roles := make([]Role, len(nodes))
	for i, n := range nodes {
		opinions[i] = n.Opinion()
		roles[i] = n.Role
	}
	return View{opinions: opinions, roles: roles}
}

// Opinion returns the recorded opinion of node id in this view.
func (v View) Opinion(id ID) vote.Vote {
	return v.opinions[id]
}

// Answer returns the vote node n contributes when sampled by an honest
// peer this round, before any network modifier runs.
func (n Node) Answer(view View, src *rng.Source) vote.Vote {
	switch n.Role {
	case Honest:
		return n.Backend.Preference()
	case Infantile:
		return n.fixedOpinion.Opposite()
	case Random:
		return randomVote(src)
	case Omniscient:
		return omniscientAnswer(view)
	default:
		return vote.None
	}
}

func randomVote(src *rng.Source) vote.Vote {
	switch src.Intn(3) {
	case 0:
		return vote.None
	case 1:
		return vote.Yes
	default:
		return vote.No
	}
}

// omniscientAnswer counts current Yes vs No across honest nodes and
// returns the minority, to maximally delay convergence. Ties are broken
// in favor of No. None is never returned.
func omniscientAnswer(view View) vote.Vote {
	var yes, no int
	for i, opinion := range view.opinions {
		if view.roles[i] != Honest {
			continue
		}
		switch opinion {
		case vote.Yes:
			yes++
		case vote.No:
			no++
		}
	}
	if yes < no {
		return vote.Yes
	}
	return vote.No
}
