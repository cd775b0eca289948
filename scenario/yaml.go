// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/logos-co/consensus-research/consensus"
)

// UnmarshalYAML decodes the consensus_settings tagged variant:
// {snow_ball {...}} or {claro {...}}.
func (c *ConsensusSettings) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		SnowBall *consensus.SnowballParams `yaml:"snow_ball"`
		Claro    *consensus.ClaroParams    `yaml:"claro"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch {
	case raw.SnowBall != nil:
		c.Kind = SnowballKind
		c.Snowball = *raw.SnowBall
	case raw.Claro != nil:
		c.Kind = ClaroKind
		c.Claro = *raw.Claro
	default:
		return fmt.Errorf("consensus_settings: expected one of snow_ball, claro")
	}
	return nil
}

// UnmarshalYAML decodes the simulation_style tagged variant: the bare
// string "Sync", {Async {chunks}}, or {Glauber {update_rate,
// maximum_iterations}}.
func (s *SimulationStyle) UnmarshalYAML(value *yaml.Node) error {
	var tag string
	if value.Decode(&tag) == nil {
		switch tag {
		case "Sync":
			*s = SimulationStyle{Kind: Sync}
			return nil
		default:
			return fmt.Errorf("simulation_style: unknown bare style %q", tag)
		}
	}

	var raw struct {
		Async *struct {
			Chunks int `yaml:"chunks"`
		} `yaml:"Async"`
		Glauber *struct {
			UpdateRate        int `yaml:"update_rate"`
			MaximumIterations int `yaml:"maximum_iterations"`
		} `yaml:"Glauber"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch {
	case raw.Async != nil:
		*s = SimulationStyle{Kind: Async, Chunks: raw.Async.Chunks}
	case raw.Glauber != nil:
		*s = SimulationStyle{
			Kind:              Glauber,
			UpdateRate:        raw.Glauber.UpdateRate,
			MaximumIterations: raw.Glauber.MaximumIterations,
		}
	default:
		return fmt.Errorf("simulation_style: expected one of Sync, Async, Glauber")
	}
	return nil
}

// UnmarshalYAML decodes one ward entry.
func (w *WardSpec) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		TimeToFinality *struct {
			TTFThreshold int `yaml:"ttf_threshold"`
		} `yaml:"time_to_finality"`
		Stabilised *struct {
			Buffer int        `yaml:"buffer"`
			Check  *yaml.Node `yaml:"check"`
		} `yaml:"stabilised"`
		Converged *struct {
			Ratio float64 `yaml:"ratio"`
		} `yaml:"converged"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	switch {
	case raw.TimeToFinality != nil:
		*w = WardSpec{Kind: TimeToFinality, TTFThreshold: raw.TimeToFinality.TTFThreshold}
	case raw.Stabilised != nil:
		spec := WardSpec{Kind: Stabilised, Buffer: raw.Stabilised.Buffer, GranularityKind: GranularityRounds}
		if check := raw.Stabilised.Check; check != nil {
			var bare string
			if check.Decode(&bare) == nil {
				if bare != "rounds" {
					return fmt.Errorf("stabilised.check: unknown bare granularity %q", bare)
				}
			} else {
				var iterations struct {
					Iterations *struct {
						Chunk int `yaml:"chunk"`
					} `yaml:"iterations"`
				}
				if err := check.Decode(&iterations); err != nil {
					return err
				}
				if iterations.Iterations == nil {
					return fmt.Errorf("stabilised.check: expected rounds or iterations")
				}
				spec.GranularityKind = GranularityIterations
				spec.GranularityChunk = iterations.Iterations.Chunk
			}
		}
		*w = spec
	case raw.Converged != nil:
		*w = WardSpec{Kind: Converged, Ratio: raw.Converged.Ratio}
	default:
		return fmt.Errorf("wards: expected one of time_to_finality, stabilised, converged")
	}
	return nil
}

// UnmarshalYAML decodes one network_modifiers entry.
func (m *ModifierSpec) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		RandomDrop *struct {
			DropRate float64 `yaml:"drop_rate"`
		} `yaml:"random_drop"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.RandomDrop == nil {
		return fmt.Errorf("network_modifiers: expected random_drop")
	}
	*m = ModifierSpec{Kind: RandomDrop, DropRate: raw.RandomDrop.DropRate}
	return nil
}
