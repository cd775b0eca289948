// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package node models the population of simulated agents: their dense
// identity, their role, and role-dependent internal state. Roles are a
// tagged variant dispatched on, rather than an interface hierarchy.
package node

import (
	"fmt"

	"github.com/logos-co/consensus-research/consensus"
	"github.com/logos-co/consensus-research/vote"
)

// ID is a dense identifier in [0, N) for a simulated node. Stable for
// the entire run.
type ID uint32

// Role is the behavioral class of a node.
type Role uint8

const (
	Honest Role = iota
	Infantile
	Random
	Omniscient
)

// String implements fmt.Stringer.
func (r Role) String() string {
	switch r {
	case Honest:
		return "Honest"
	case Infantile:
		return "Infantile"
	case Random:
		return "Random"
	case Omniscient:
		return "Omniscient"
	default:
		return "Invalid"
	}
}

// Node is one simulated agent.
type Node struct {
	ID   ID
	Role Role

	// Honest only: the pluggable consensus backend driving opinion
	// updates. The backends built by consensus.NewSnowball and
	// consensus.NewClaro both satisfy this.
	Backend consensus.Backend

	// Infantile only: the fixed, internally-held opinion; the node
	// always answers with its Opposite().
	fixedOpinion vote.Vote
}

// NewHonest constructs an honest node with the given backend.
func NewHonest(id ID, backend consensus.Backend) Node {
	return Node{ID: id, Role: Honest, Backend: backend}
}

// NewInfantile constructs a persistently-lying node with the given fixed
// internal opinion.
func NewInfantile(id ID, fixedOpinion vote.Vote) Node {
	return Node{ID: id, Role: Infantile, fixedOpinion: fixedOpinion}
}

// NewRandom constructs a node that answers with a freshly-drawn vote
// every time it is queried.
func NewRandom(id ID) Node {
	return Node{ID: id, Role: Random}
}

// NewOmniscient constructs an adversarial node that reads the network
// view to pick a minority-seeking answer.
func NewOmniscient(id ID) Node {
	return Node{ID: id, Role: Omniscient}
}

// Opinion returns the node's current displayed opinion for recording in
// the result table: an honest node's backend preference, or an
// infantile node's fixed internal opinion (never the lie it tells
// peers -- the result table records true internal state).
func (n Node) Opinion() vote.Vote {
	switch n.Role {
	case Honest:
		return n.Backend.Preference()
	case Infantile:
		return n.fixedOpinion
	default:
		return vote.None
	}
}

// Decided reports whether this node's recorded opinion is frozen.
// Byzantine nodes never decide.
func (n Node) Decided() bool {
	if n.Role != Honest {
		return false
	}
	return n.Backend.Decided()
}

func (n Node) String() string {
	return fmt.Sprintf("Node(id=%d, role=%s, opinion=%s)", n.ID, n.Role, n.Opinion())
}
