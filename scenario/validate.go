// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package scenario

import (
	"fmt"
	"math"

	"github.com/logos-co/consensus-research/utils/wrappers"
)

const distributionTolerance = 1e-6

// Validate checks every invariant a scenario must satisfy, collecting
// every violation found rather than stopping at the first one, and
// returns them aggregated through wrappers.Errs as a single fatal
// report.
func (s Scenario) Validate() error {
	var errs wrappers.Errs

	if s.N() <= 0 {
		errs.Add(fmt.Errorf("byzantine_settings.total_size = %d: fails the condition that: 0 < total_size", s.N()))
	}

	if math.Abs(s.Distribution.Sum()-1.0) > distributionTolerance {
		errs.Add(fmt.Errorf("distribution sums to %f: fails the condition that: sum == 1.0 +/- %g", s.Distribution.Sum(), distributionTolerance))
	}
	validateUnitInterval(&errs, "distribution.yes", s.Distribution.Yes)
	validateUnitInterval(&errs, "distribution.no", s.Distribution.No)
	validateUnitInterval(&errs, "distribution.none", s.Distribution.None)

	rd := s.ByzantineSettings.Distribution
	if math.Abs(rd.Sum()-1.0) > distributionTolerance {
		errs.Add(fmt.Errorf("byzantine_settings.distribution sums to %f: fails the condition that: sum == 1.0 +/- %g", rd.Sum(), distributionTolerance))
	}
	validateUnitInterval(&errs, "byzantine_settings.distribution.honest", rd.Honest)
	validateUnitInterval(&errs, "byzantine_settings.distribution.infantile", rd.Infantile)
	validateUnitInterval(&errs, "byzantine_settings.distribution.random", rd.Random)
	validateUnitInterval(&errs, "byzantine_settings.distribution.omniscient", rd.Omniscient)

	s.validateConsensusSettings(&errs)
	s.validateSimulationStyle(&errs)
	s.validateWards(&errs)
	s.validateModifiers(&errs)

	return errs.Err()
}

func validateUnitInterval(errs *wrappers.Errs, field string, v float64) {
	if v < 0 || v > 1 {
		errs.Add(fmt.Errorf("%s = %f: fails the condition that: 0 <= %s <= 1", field, v, field))
	}
}

func (s Scenario) validateConsensusSettings(errs *wrappers.Errs) {
	switch s.ConsensusSettings.Kind {
	case SnowballKind:
		p := s.ConsensusSettings.Snowball
		if p.SampleSize <= 0 {
			errs.Add(fmt.Errorf("snow_ball.sample_size = %d: fails the condition that: 0 < sample_size", p.SampleSize))
		}
		if p.QuorumSize <= 0 || p.QuorumSize > p.SampleSize {
			errs.Add(fmt.Errorf("snow_ball.quorum_size = %d, sample_size = %d: fails the condition that: 0 < quorum_size <= sample_size", p.QuorumSize, p.SampleSize))
		}
		if p.DecisionThreshold <= 0 {
			errs.Add(fmt.Errorf("snow_ball.decision_threshold = %d: fails the condition that: 0 < decision_threshold", p.DecisionThreshold))
		}
	case ClaroKind:
		p := s.ConsensusSettings.Claro
		if p.EvidenceAlpha1 <= 0 || p.EvidenceAlpha1 > 1 {
			errs.Add(fmt.Errorf("claro.evidence_alpha = %f: fails the condition that: 0 < evidence_alpha <= 1", p.EvidenceAlpha1))
		}
		if p.EvidenceAlpha2 <= 0 || p.EvidenceAlpha2 > 1 {
			errs.Add(fmt.Errorf("claro.evidence_alpha_2 = %f: fails the condition that: 0 < evidence_alpha_2 <= 1", p.EvidenceAlpha2))
		}
		if p.ConfidenceBeta <= 0 {
			errs.Add(fmt.Errorf("claro.confidence_beta = %d: fails the condition that: 0 < confidence_beta", p.ConfidenceBeta))
		}
		if p.LookAhead <= 0 {
			errs.Add(fmt.Errorf("claro.look_ahead = %d: fails the condition that: 0 < look_ahead", p.LookAhead))
		}
		if p.Query.QuerySize <= 0 {
			errs.Add(fmt.Errorf("claro.query.query_size = %d: fails the condition that: 0 < query_size", p.Query.QuerySize))
		}
		if p.Query.InitialQuerySize <= 0 || p.Query.InitialQuerySize > p.Query.QuerySize {
			errs.Add(fmt.Errorf("claro.query.initial_query_size = %d, query_size = %d: fails the condition that: 0 < initial_query_size <= query_size", p.Query.InitialQuerySize, p.Query.QuerySize))
		}
		if p.Query.QueryMultiplier <= 1 {
			errs.Add(fmt.Errorf("claro.query.query_multiplier = %f: fails the condition that: 1 < query_multiplier", p.Query.QueryMultiplier))
		}
		if p.Query.MaxMultiplier < 1 {
			errs.Add(fmt.Errorf("claro.query.max_multiplier = %f: fails the condition that: 1 <= max_multiplier", p.Query.MaxMultiplier))
		}
	default:
		errs.Add(fmt.Errorf("consensus_settings: unknown backend tag %d", s.ConsensusSettings.Kind))
	}
}

func (s Scenario) validateSimulationStyle(errs *wrappers.Errs) {
	switch s.SimulationStyle.Kind {
	case Sync:
	case Async:
		if s.SimulationStyle.Chunks <= 0 {
			errs.Add(fmt.Errorf("simulation_style.chunks = %d: fails the condition that: 0 < chunks", s.SimulationStyle.Chunks))
		}
	case Glauber:
		if s.SimulationStyle.UpdateRate <= 0 {
			errs.Add(fmt.Errorf("simulation_style.update_rate = %d: fails the condition that: 0 < update_rate", s.SimulationStyle.UpdateRate))
		}
		if s.SimulationStyle.MaximumIterations <= 0 {
			errs.Add(fmt.Errorf("simulation_style.maximum_iterations = %d: fails the condition that: 0 < maximum_iterations", s.SimulationStyle.MaximumIterations))
		}
	default:
		errs.Add(fmt.Errorf("simulation_style: unknown style tag %d", s.SimulationStyle.Kind))
	}
}

func (s Scenario) validateWards(errs *wrappers.Errs) {
	for i, w := range s.Wards {
		switch w.Kind {
		case TimeToFinality:
			if w.TTFThreshold < 0 {
				errs.Add(fmt.Errorf("wards[%d].ttf_threshold = %d: fails the condition that: 0 <= ttf_threshold", i, w.TTFThreshold))
			}
		case Stabilised:
			if w.Buffer <= 0 {
				errs.Add(fmt.Errorf("wards[%d].buffer = %d: fails the condition that: 0 < buffer", i, w.Buffer))
			}
			if w.GranularityKind == GranularityIterations && w.GranularityChunk <= 0 {
				errs.Add(fmt.Errorf("wards[%d].chunk = %d: fails the condition that: 0 < chunk", i, w.GranularityChunk))
			}
		case Converged:
			if w.Ratio <= 0 || w.Ratio > 1 {
				errs.Add(fmt.Errorf("wards[%d].ratio = %f: fails the condition that: 0 < ratio <= 1", i, w.Ratio))
			}
		default:
			errs.Add(fmt.Errorf("wards[%d]: unknown ward tag %d", i, w.Kind))
		}
	}
}

func (s Scenario) validateModifiers(errs *wrappers.Errs) {
	for i, m := range s.NetworkModifiers {
		switch m.Kind {
		case RandomDrop:
			if m.DropRate < 0 || m.DropRate > 1 {
				errs.Add(fmt.Errorf("network_modifiers[%d].drop_rate = %f: fails the condition that: 0 <= drop_rate <= 1", i, m.DropRate))
			}
		default:
			errs.Add(fmt.Errorf("network_modifiers[%d]: unknown modifier tag %d", i, m.Kind))
		}
	}
}
