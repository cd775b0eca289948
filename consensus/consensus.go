// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package consensus implements the pluggable honest-node backends,
// Snowball and Claro. Both are modeled as a strategy over a small piece
// of per-node state, rather than an open-ended inheritance hierarchy.
package consensus

import "github.com/logos-co/consensus-research/vote"

// Sample requests k peer votes from the driver: k peer ids are drawn
// without replacement (excluding the querying node), each peer is
// queried for its vote, and the resulting vote list is passed through
// the scenario's modifier pipeline before being returned. Backends call
// Sample as many times, at whatever sizes, their round logic needs --
// Snowball calls it once per round; Claro may call it repeatedly at
// growing sizes during its look-ahead query expansion.
type Sample func(k int) []vote.Vote

type Backend interface {
	Preference() vote.Vote
	Decided() bool
	Step(sample Sample)
	Clone() Backend
}

// countVotes tallies a sample's votes, ignoring None. It is shared by
// both backends.
func countVotes(votes []vote.Vote) (yes, no int) {
	for _, v := range votes {
		switch v {
		case vote.Yes:
			yes++
		case vote.No:
			no++
		}
	}
	return yes, no
}
