// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simulate

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/logos-co/consensus-research/consensus"
	"github.com/logos-co/consensus-research/modifiers"
	"github.com/logos-co/consensus-research/node"
	"github.com/logos-co/consensus-research/rng"
	"github.com/logos-co/consensus-research/scenario"
	"github.com/logos-co/consensus-research/vote"
	"github.com/logos-co/consensus-research/wards"
)

// Driver runs scenarios against a shared, optional logger and metrics
// registerer. The zero value is usable; logging is skipped when Logger
// is nil, and metrics are skipped when Registerer is nil.
type Driver struct {
	Logger     *zap.Logger
	Registerer prometheus.Registerer
}

// Run executes one scenario end to end and returns its result table.
// ctx is consulted between rounds/chunks/iterations so long Glauber
// runs can be cancelled; the core per-round computation itself never
// blocks.
func (d Driver) Run(ctx context.Context, s scenario.Scenario) (*Table, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	src := rng.New(s.Seed)
	nodes := buildNodes(s, src)
	modChain := buildModifiers(s, src)
	wardChain := wards.Chain(buildWards(s))

	var mtx *metrics
	if d.Registerer != nil {
		var err error
		mtx, err = newMetrics(d.Registerer)
		if err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
	}

	table := &Table{}
	table.Append(opinionsOf(nodes))

	history := []wards.Snapshot{snapshotOf(nodes, 0, 0)}

	d.log("starting simulation", zap.Int("n", s.N()), zap.Uint64("seed", s.Seed))

	switch s.SimulationStyle.Kind {
	case scenario.Sync:
		return d.runSync(ctx, s, nodes, src, modChain, wardChain, mtx, table, history)
	case scenario.Async:
		return d.runAsync(ctx, s, nodes, src, modChain, wardChain, mtx, table, history)
	case scenario.Glauber:
		return d.runGlauber(ctx, s, nodes, src, modChain, wardChain, mtx, table, history)
	default:
		return nil, fmt.Errorf("unknown simulation style tag %d", s.SimulationStyle.Kind)
	}
}

func (d Driver) log(msg string, fields ...zap.Field) {
	if d.Logger == nil {
		return
	}
	d.Logger.Info(msg, fields...)
}

func (d Driver) runSync(
	ctx context.Context,
	s scenario.Scenario,
	nodes []node.Node,
	src *rng.Source,
	modChain modifiers.Chain,
	wardChain wards.Chain,
	mtx *metrics,
	table *Table,
	history []wards.Snapshot,
) (*Table, error) {
	round := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		round++
		view := node.NewView(nodes)
		stepActive(nodes, allIDs(nodes), view, src, modChain)

		table.Append(opinionsOf(nodes))
		snap := snapshotOf(nodes, round, round)
		history = append(history, snap)
		mtx.recordRound(countDecided(snap.Decided))

		if wardChain.ShouldStop(history) {
			d.log("simulation stopped by ward", zap.Int("round", round))
			break
		}
	}
	return table, nil
}

func (d Driver) runAsync(
	ctx context.Context,
	s scenario.Scenario,
	nodes []node.Node,
	src *rng.Source,
	modChain modifiers.Chain,
	wardChain wards.Chain,
	mtx *metrics,
	table *Table,
	history []wards.Snapshot,
) (*Table, error) {
	chunks := partition(len(nodes), s.SimulationStyle.Chunks)

	round := 0
	for {
		for _, chunk := range chunks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			round++
			view := node.NewView(nodes)
			stepActive(nodes, chunk, view, src, modChain)

			table.Append(opinionsOf(nodes))
			snap := snapshotOf(nodes, round, round)
			history = append(history, snap)
			mtx.recordRound(countDecided(snap.Decided))

			if wardChain.ShouldStop(history) {
				d.log("simulation stopped by ward", zap.Int("round", round))
				return table, nil
			}
		}
	}
}

func (d Driver) runGlauber(
	ctx context.Context,
	s scenario.Scenario,
	nodes []node.Node,
	src *rng.Source,
	modChain modifiers.Chain,
	wardChain wards.Chain,
	mtx *metrics,
	table *Table,
	history []wards.Snapshot,
) (*Table, error) {
	style := s.SimulationStyle
	for iteration := 1; iteration <= style.MaximumIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		view := node.NewView(nodes)
		chosen := node.ID(src.Intn(len(nodes)))
		stepActive(nodes, []node.ID{chosen}, view, src, modChain)

		if iteration%style.UpdateRate != 0 {
			continue
		}

		table.Append(opinionsOf(nodes))
		snap := snapshotOf(nodes, table.Rounds(), iteration)
		history = append(history, snap)
		mtx.recordRound(countDecided(snap.Decided))

		if wardChain.ShouldStop(history) {
			d.log("simulation stopped by ward", zap.Int("iteration", iteration))
			break
		}
	}
	return table, nil
}

// stepActive drives one step of every honest node in ids against the
// given (already-snapshotted) network view.
func stepActive(nodes []node.Node, ids []node.ID, view node.View, src *rng.Source, modChain modifiers.Chain) {
	n := len(nodes)
	for _, id := range ids {
		if nodes[id].Role != node.Honest {
			continue
		}
		self := int(id)
		sample := consensus.Sample(func(k int) []vote.Vote {
			peers := src.SampleWithoutReplacement(n, k, self)
			votes := make([]vote.Vote, len(peers))
			for i, p := range peers {
				votes[i] = nodes[p].Answer(view, src)
			}
			return modChain.Apply(votes)
		})
		nodes[id].Backend.Step(sample)
	}
}

func allIDs(nodes []node.Node) []node.ID {
	ids := make([]node.ID, len(nodes))
	for i := range nodes {
		ids[i] = node.ID(i)
	}
	return ids
}

// partition splits [0, n) into chunks disjoint subsets, assigning ids
// round-robin (id i goes to chunk i % chunks). Order within a chunk does
// not matter since every active node reads the same pre-round snapshot.
func partition(n, chunks int) [][]node.ID {
	out := make([][]node.ID, chunks)
	for i := 0; i < n; i++ {
		c := i % chunks
		out[c] = append(out[c], node.ID(i))
	}
	return out
}

func opinionsOf(nodes []node.Node) []vote.Vote {
	out := make([]vote.Vote, len(nodes))
	for i, n := range nodes {
		out[i] = n.Opinion()
	}
	return out
}

func countDecided(decided []bool) int {
	n := 0
	for _, d := range decided {
		if d {
			n++
		}
	}
	return n
}

func decidedOf(nodes []node.Node) []bool {
	out := make([]bool, len(nodes))
	for i, n := range nodes {
		out[i] = n.Decided()
	}
	return out
}

func snapshotOf(nodes []node.Node, round, iteration int) wards.Snapshot {
	return wards.Snapshot{
		Round:     round,
		Iteration: iteration,
		Opinions:  opinionsOf(nodes),
		Decided:   decidedOf(nodes),
	}
}

func buildModifiers(s scenario.Scenario, src *rng.Source) modifiers.Chain {
	chain := make(modifiers.Chain, 0, len(s.NetworkModifiers))
	for _, m := range s.NetworkModifiers {
		switch m.Kind {
		case scenario.RandomDrop:
			chain = append(chain, modifiers.NewRandomDrop(m.DropRate, src))
		}
	}
	return chain
}

func buildWards(s scenario.Scenario) []wards.Ward {
	out := make([]wards.Ward, 0, len(s.Wards))
	for _, w := range s.Wards {
		switch w.Kind {
		case scenario.TimeToFinality:
			out = append(out, wards.NewTimeToFinality(w.TTFThreshold))
		case scenario.Stabilised:
			granularity := wards.Rounds()
			if w.GranularityKind == scenario.GranularityIterations {
				granularity = wards.Iterations(w.GranularityChunk)
			}
			out = append(out, wards.NewStabilised(w.Buffer, granularity))
		case scenario.Converged:
			out = append(out, wards.NewConverged(w.Ratio))
		}
	}
	return out
}

func buildNodes(s scenario.Scenario, src *rng.Source) []node.Node {
	nodes := make([]node.Node, s.N())
	for i := 0; i < s.N(); i++ {
		role := s.RoleFor(src.Float64())
		switch role {
		case node.Honest:
			initial := s.OpinionFor(src.Float64())
			nodes[i] = node.NewHonest(node.ID(i), newBackend(s.ConsensusSettings, initial))
		case node.Infantile:
			initial := s.OpinionFor(src.Float64())
			nodes[i] = node.NewInfantile(node.ID(i), initial)
		case node.Random:
			nodes[i] = node.NewRandom(node.ID(i))
		case node.Omniscient:
			nodes[i] = node.NewOmniscient(node.ID(i))
		}
	}
	return nodes
}

func newBackend(cs scenario.ConsensusSettings, initial vote.Vote) consensus.Backend {
	switch cs.Kind {
	case scenario.ClaroKind:
		return consensus.NewClaro(cs.Claro, initial)
	default:
		return consensus.NewSnowball(cs.Snowball, initial)
	}
}
