// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package simulate implements the simulation driver: node construction,
// the Sync/Async/Glauber stepping disciplines, the per-round
// network-view snapshot, and the append-only result table.
package simulate

import "github.com/logos-co/consensus-research/vote"

// Table is the append-only per-round record of every node's opinion.
// Column 0 is the initial state; column r is the state after round r
// completes.
type Table struct {
	columns [][]vote.Vote
}

// Append adds a new column (one opinion per node, in id order).
func (t *Table) Append(column []vote.Vote) {
	cp := append([]vote.Vote(nil), column...)
	t.columns = append(t.columns, cp)
}

// N is the number of rows (nodes). Zero if no column has been recorded.
func (t *Table) N() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns[0])
}

// Rounds is R, the number of completed rounds (column count minus the
// initial-state column).
func (t *Table) Rounds() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns) - 1
}

// Column returns the r-th recorded column (round r's opinions, in id
// order). Column 0 is the initial state.
func (t *Table) Column(r int) []vote.Vote {
	return t.columns[r]
}

// Encode renders the table as N rows x (R+1) columns of integer cells
// {None->0, Yes->1, No->2}.
func (t *Table) Encode() [][]uint8 {
	n := t.N()
	out := make([][]uint8, n)
	for i := 0; i < n; i++ {
		row := make([]uint8, len(t.columns))
		for r, column := range t.columns {
			row[r] = column[i].Encode()
		}
		out[i] = row
	}
	return out
}
