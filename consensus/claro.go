// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consensus

import (
	"math"

	"github.com/logos-co/consensus-research/vote"
)

// QueryConfig controls Claro's escalating look-ahead query: an initial
// query size that grows by QueryMultiplier each retry, capped at
// QuerySize*MaxMultiplier.
type QueryConfig struct {
	QuerySize        int     `yaml:"query_size" json:"query_size"`
	InitialQuerySize int     `yaml:"initial_query_size" json:"initial_query_size"`
	QueryMultiplier  float64 `yaml:"query_multiplier" json:"query_multiplier"`
	MaxMultiplier    float64 `yaml:"max_multiplier" json:"max_multiplier"`
}

// ClaroParams are the tunables for the Claro backend.
//
// EvidenceAlpha2 is treated as the stricter (higher) of the two evidence
// fractions: a round must clear EvidenceAlpha1 to count as evidence at
// all, and additionally clear EvidenceAlpha2 to advance confidence. No
// ordering between the two is enforced at validation time.
type ClaroParams struct {
	EvidenceAlpha1 float64     `yaml:"evidence_alpha" json:"evidence_alpha"`
	EvidenceAlpha2 float64     `yaml:"evidence_alpha_2" json:"evidence_alpha_2"`
	ConfidenceBeta int         `yaml:"confidence_beta" json:"confidence_beta"`
	LookAhead      int         `yaml:"look_ahead" json:"look_ahead"`
	Query          QueryConfig `yaml:"query" json:"query"`
}

// claro is the per-node Claro state machine: evidence counters per
// color driven by a float-ratio threshold, a confidence score gated by
// a stricter second threshold, and a rolling look-ahead window requiring
// several consecutive rounds to agree before finalizing.
type claro struct {
	params ClaroParams

	opinion      vote.Vote
	evidenceYes  int
	evidenceNo   int
	confidence   int
	window       []vote.Vote // ring buffer of the last LookAhead round winners
	decided      bool
}

var _ Backend = (*claro)(nil)

// NewClaro constructs a fresh Claro backend with the given initial opinion.
func NewClaro(params ClaroParams, initial vote.Vote) Backend {
	return &claro{params: params, opinion: initial}
}

func (c *claro) Preference() vote.Vote { return c.opinion }
func (c *claro) Decided() bool         { return c.decided }

func (c *claro) Clone() Backend {
	cp := *c
	cp.window = append([]vote.Vote(nil), c.window...)
	return &cp
}

// Step issues a round of look-ahead queries and updates evidence,
// confidence, preference, and the decided flag accordingly.
func (c *claro) Step(sample Sample) {
	if c.decided {
		return
	}

	winner, reachedAlpha2 := c.query(sample)

	if winner == vote.None {
		c.confidence = 0
		c.pushWindow(vote.None)
		return
	}

	switch winner {
	case vote.Yes:
		c.evidenceYes++
	case vote.No:
		c.evidenceNo++
	}

	if reachedAlpha2 {
		c.confidence++
	} else {
		c.confidence = 0
	}

	switch {
	case c.evidenceYes > c.evidenceNo:
		c.opinion = vote.Yes
	case c.evidenceNo > c.evidenceYes:
		c.opinion = vote.No
	}

	c.pushWindow(winner)

	if c.confidence >= c.params.ConfidenceBeta && c.windowAgrees() {
		c.decided = true
	}
}

// query issues an escalating sequence of queries and returns the color
// that reached EvidenceAlpha1 this round (vote.None if no color did by
// the time the query size is capped), plus whether that color
// additionally reached the stricter EvidenceAlpha2.
func (c *claro) query(sample Sample) (vote.Vote, bool) {
	q := c.params.Query
	size := q.InitialQuerySize
	ceiling := float64(q.QuerySize) * q.MaxMultiplier

	for attempt := 0; ; attempt++ {
		votes := sample(size)
		yes, no := countVotes(votes)
		total := yes + no
		if total > 0 {
			yesFrac := float64(yes) / float64(total)
			noFrac := float64(no) / float64(total)

			yesReaches := yesFrac >= c.params.EvidenceAlpha1
			noReaches := noFrac >= c.params.EvidenceAlpha1

			if yesReaches && noReaches {
				// Tie: favor the current opinion, falling back to Yes.
				if c.opinion == vote.No {
					yesReaches = false
				} else {
					noReaches = false
				}
			}

			if yesReaches {
				return vote.Yes, yesFrac >= c.params.EvidenceAlpha2
			}
			if noReaches {
				return vote.No, noFrac >= c.params.EvidenceAlpha2
			}
		}

		nextSize := float64(q.QuerySize) * math.Pow(q.QueryMultiplier, float64(attempt+1))
		if nextSize > ceiling {
			if float64(size) >= ceiling {
				return vote.None, false
			}
			nextSize = ceiling
		}
		size = int(nextSize)
	}
}

func (c *claro) pushWindow(v vote.Vote) {
	c.window = append(c.window, v)
	if len(c.window) > c.params.LookAhead {
		c.window = c.window[len(c.window)-c.params.LookAhead:]
	}
}

// windowAgrees reports whether the rolling window is full (LookAhead
// entries recorded) and every entry is the same non-None color.
func (c *claro) windowAgrees() bool {
	if len(c.window) < c.params.LookAhead {
		return false
	}
	first := c.window[0]
	if first == vote.None {
		return false
	}
	for _, v := range c.window[1:] {
		if v != first {
			return false
		}
	}
	return true
}
