// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consensus

import "github.com/logos-co/consensus-research/vote"

// SnowballParams are the tunables for the Snowball backend.
type SnowballParams struct {
	// K is the sample size queried per round: Step requests exactly
	// SampleSize votes from the driver. It is also used for validation
	// (alpha <= K) and the low-alpha tie-break decision.
	SampleSize int `yaml:"sample_size" json:"sample_size"`
	// QuorumSize is alpha: votes needed in a round to count as evidence
	// for a color.
	QuorumSize int `yaml:"quorum_size" json:"quorum_size"`
	// DecisionThreshold is beta: consecutive matching rounds required to
	// finalize. Any positive integer is accepted; beta has no canonical
	// upper bound worth hard-coding.
	DecisionThreshold int `yaml:"decision_threshold" json:"decision_threshold"`
}

// snowball is the per-node Snowball state machine: a confidence counter
// per color that resets on a missed quorum, and a lazy preference switch
// that only moves opinion when a color actually wins a round's quorum.
type snowball struct {
	params SnowballParams

	opinion vote.Vote
	cntYes  int
	cntNo   int

	lastWinning vote.Vote
	decided     bool
}

var _ Backend = (*snowball)(nil)

// NewSnowball constructs a fresh Snowball backend with the given initial
// opinion (drawn from the scenario's opinion distribution).
func NewSnowball(params SnowballParams, initial vote.Vote) Backend {
	return &snowball{params: params, opinion: initial}
}

func (s *snowball) Preference() vote.Vote { return s.opinion }
func (s *snowball) Decided() bool         { return s.decided }

func (s *snowball) Clone() Backend {
	cp := *s
	return &cp
}

// Step samples a round of peer votes and updates the node's confidence
// counters and preference accordingly.
func (s *snowball) Step(sample Sample) {
	if s.decided {
		return
	}

	votes := sample(s.params.SampleSize)
	roundYes, roundNo := countVotes(votes)
	alpha := s.params.QuorumSize

	yesWins := roundYes >= alpha
	noWins := roundNo >= alpha

	// A simultaneous quorum for both colors cannot occur when
	// alpha > K/2. When alpha <= K/2 it can, and the tie is broken in
	// favor of the current opinion; if there is no current opinion yet
	// (None), Yes is favored as the deterministic fallback.
	if yesWins && noWins && alpha <= s.params.SampleSize/2 {
		switch s.opinion {
		case vote.No:
			yesWins = false
		default:
			noWins = false
		}
	}

	switch {
	case yesWins:
		if s.opinion != vote.Yes {
			s.opinion = vote.Yes
			s.cntYes = 1
		} else {
			s.cntYes++
		}
		s.lastWinning = vote.Yes
		if !noWins {
			s.cntNo = 0
		}
	case noWins:
		if s.opinion != vote.No {
			s.opinion = vote.No
			s.cntNo = 1
		} else {
			s.cntNo++
		}
		s.lastWinning = vote.No
		if !yesWins {
			s.cntYes = 0
		}
	default:
		s.cntYes = 0
		s.cntNo = 0
	}

	var current int
	switch s.opinion {
	case vote.Yes:
		current = s.cntYes
	case vote.No:
		current = s.cntNo
	}
	if current >= s.params.DecisionThreshold {
		s.decided = true
	}
}
