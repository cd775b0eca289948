// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vote defines the three-valued opinion shared by every node,
// sampler, modifier, and result column in the simulator.
package vote

// Vote is a node's opinion on the binary question being simulated.
type Vote uint8

const (
	// None means undecided, abstained, or dropped by a network modifier.
	None Vote = iota
	Yes
	No
)

// String implements fmt.Stringer.
func (v Vote) String() string {
	switch v {
	case None:
		return "None"
	case Yes:
		return "Yes"
	case No:
		return "No"
	default:
		return "Invalid"
	}
}

// Encode returns the result-table cell encoding for v: None->0, Yes->1, No->2.
func (v Vote) Encode() uint8 {
	return uint8(v)
}

// Opposite returns the swapped vote; None maps to None.
func (v Vote) Opposite() Vote {
	switch v {
	case Yes:
		return No
	case No:
		return Yes
	default:
		return None
	}
}
