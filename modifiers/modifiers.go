// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package modifiers implements the composable vote-corruption pipeline:
// a chain of small, single-purpose transforms applied to the votes a
// sampled peer set returns before they reach a node's consensus
// backend.
package modifiers

import "github.com/logos-co/consensus-research/vote"

// Modifier transforms a slice of votes, observed for one sampled peer
// set, into a possibly-corrupted slice of the same length. Modifiers
// never change the length or order of the slice -- only entries.
type Modifier interface {
	Apply(votes []vote.Vote) []vote.Vote
}

// Chain composes modifiers in the order given, each one's output
// feeding the next one's input.
type Chain []Modifier

// Apply runs every modifier in sequence.
func (c Chain) Apply(votes []vote.Vote) []vote.Vote {
	for _, m := range c {
		votes = m.Apply(votes)
	}
	return votes
}
