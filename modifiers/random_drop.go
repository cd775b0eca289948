// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package modifiers

import (
	"github.com/logos-co/consensus-research/rng"
	"github.com/logos-co/consensus-research/vote"
)

// randomDrop independently replaces each vote with vote.None at the
// configured rate, modeling a peer that failed to respond in time.
type randomDrop struct {
	dropRate float64
	src      *rng.Source
}

// NewRandomDrop constructs a random_drop modifier. dropRate must be in
// [0, 1]; it is not validated here -- scenario.Validate is responsible
// for range-checking configuration before a run starts.
func NewRandomDrop(dropRate float64, src *rng.Source) Modifier {
	return &randomDrop{dropRate: dropRate, src: src}
}

func (m *randomDrop) Apply(votes []vote.Vote) []vote.Vote {
	if m.dropRate <= 0 {
		return votes
	}
	out := make([]vote.Vote, len(votes))
	for i, v := range votes {
		if m.src.Bool(m.dropRate) {
			out[i] = vote.None
			continue
		}
		out[i] = v
	}
	return out
}
