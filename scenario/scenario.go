// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package scenario describes the full input configuration for one
// simulation run and validates it before a run starts.
package scenario

import (
	"github.com/logos-co/consensus-research/consensus"
	"github.com/logos-co/consensus-research/node"
	"github.com/logos-co/consensus-research/vote"
)

// ConsensusKind tags which consensus backend a scenario configures.
type ConsensusKind uint8

const (
	SnowballKind ConsensusKind = iota
	ClaroKind
)

// ConsensusSettings is the tagged-variant consensus backend choice and
// its parameters.
type ConsensusSettings struct {
	Kind     ConsensusKind            `yaml:"-" json:"-"`
	Snowball consensus.SnowballParams `yaml:"snow_ball,omitempty" json:"snow_ball,omitempty"`
	Claro    consensus.ClaroParams    `yaml:"claro,omitempty" json:"claro,omitempty"`
}

// Distribution is a normalized probability distribution over a small
// fixed set of categories. Used both for the initial honest-opinion
// distribution ({yes, no, none}) and the role distribution
// ({honest, infantile, random, omniscient}).
type Distribution struct {
	Yes  float64 `yaml:"yes" json:"yes"`
	No   float64 `yaml:"no" json:"no"`
	None float64 `yaml:"none" json:"none"`
}

// Sum returns the total probability mass.
func (d Distribution) Sum() float64 { return d.Yes + d.No + d.None }

// RoleDistribution is the byzantine_settings.distribution shape.
type RoleDistribution struct {
	Honest     float64 `yaml:"honest" json:"honest"`
	Infantile  float64 `yaml:"infantile" json:"infantile"`
	Random     float64 `yaml:"random" json:"random"`
	Omniscient float64 `yaml:"omniscient" json:"omniscient"`
}

// Sum returns the total probability mass.
func (d RoleDistribution) Sum() float64 {
	return d.Honest + d.Infantile + d.Random + d.Omniscient
}

// ByzantineSettings is the byzantine_settings shape.
type ByzantineSettings struct {
	TotalSize    int              `yaml:"total_size" json:"total_size"`
	Distribution RoleDistribution `yaml:"distribution" json:"distribution"`
}

// StyleKind tags which simulation stepping discipline a scenario uses.
type StyleKind uint8

const (
	Sync StyleKind = iota
	Async
	Glauber
)

// SimulationStyle is the tagged-variant simulation_style shape.
type SimulationStyle struct {
	Kind StyleKind `yaml:"-" json:"-"`

	// Async only.
	Chunks int `yaml:"chunks,omitempty" json:"chunks,omitempty"`

	// Glauber only.
	UpdateRate        int `yaml:"update_rate,omitempty" json:"update_rate,omitempty"`
	MaximumIterations int `yaml:"maximum_iterations,omitempty" json:"maximum_iterations,omitempty"`
}

// WardKind tags which stop-condition evaluator a WardSpec describes.
type WardKind uint8

const (
	TimeToFinality WardKind = iota
	Stabilised
	Converged
)

// StabilisedGranularityKind tags a stabilised ward's comparison
// granularity.
type StabilisedGranularityKind uint8

const (
	GranularityRounds StabilisedGranularityKind = iota
	GranularityIterations
)

// WardSpec is one entry of the wards list.
type WardSpec struct {
	Kind WardKind `yaml:"-" json:"-"`

	// time_to_finality only.
	TTFThreshold int `yaml:"ttf_threshold,omitempty" json:"ttf_threshold,omitempty"`

	// stabilised only.
	Buffer           int                       `yaml:"buffer,omitempty" json:"buffer,omitempty"`
	GranularityKind  StabilisedGranularityKind `yaml:"-" json:"-"`
	GranularityChunk int                       `yaml:"chunk,omitempty" json:"chunk,omitempty"`

	// converged only.
	Ratio float64 `yaml:"ratio,omitempty" json:"ratio,omitempty"`
}

// ModifierKind tags which network-effect transform a ModifierSpec
// describes.
type ModifierKind uint8

const (
	RandomDrop ModifierKind = iota
)

// ModifierSpec is one entry of the network_modifiers list.
type ModifierSpec struct {
	Kind     ModifierKind `yaml:"-" json:"-"`
	DropRate float64      `yaml:"drop_rate,omitempty" json:"drop_rate,omitempty"`
}

// Scenario is the full input configuration for one simulation run.
type Scenario struct {
	ConsensusSettings ConsensusSettings `yaml:"consensus_settings" json:"consensus_settings"`
	Distribution      Distribution      `yaml:"distribution" json:"distribution"`
	ByzantineSettings ByzantineSettings `yaml:"byzantine_settings" json:"byzantine_settings"`
	SimulationStyle   SimulationStyle   `yaml:"simulation_style" json:"simulation_style"`
	Wards             []WardSpec        `yaml:"wards" json:"wards"`
	NetworkModifiers  []ModifierSpec    `yaml:"network_modifiers" json:"network_modifiers"`
	Seed              uint64            `yaml:"seed" json:"seed"`
}

// N is the total node count, taken from byzantine_settings.total_size.
func (s Scenario) N() int { return s.ByzantineSettings.TotalSize }

// roleFor classifies which node.Role a distribution draw r in [0, 1)
// selects, in the fixed honest/infantile/random/omniscient order.
func roleFor(d RoleDistribution, r float64) node.Role {
	switch {
	case r < d.Honest:
		return node.Honest
	case r < d.Honest+d.Infantile:
		return node.Infantile
	case r < d.Honest+d.Infantile+d.Random:
		return node.Random
	default:
		return node.Omniscient
	}
}

// RoleFor exposes roleFor for use by the simulation driver's role
// assignment step during node construction.
func (s Scenario) RoleFor(r float64) node.Role {
	return roleFor(s.ByzantineSettings.Distribution, r)
}

// OpinionFor classifies which vote.Vote a distribution draw r in
// [0, 1) selects for an honest node's initial opinion, in the fixed
// yes/no/none order.
func (s Scenario) OpinionFor(r float64) vote.Vote {
	d := s.Distribution
	switch {
	case r < d.Yes:
		return vote.Yes
	case r < d.Yes+d.No:
		return vote.No
	default:
		return vote.None
	}
}
