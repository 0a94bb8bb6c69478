// Package mcts implements the PUCT-guided Monte Carlo Tree Search engine:
// node storage, the two-half tree arena, selection/expansion/simulation,
// tree reuse across moves, time/node limiters and UCI-facing reporting.
package mcts

import "github.com/anura-engine/anura/chesstypes"

// GameResult tags a node as a finished game or still in progress. Ongoing
// is the zero value on purpose, so a freshly-pushed Node{} starts Ongoing
// without any explicit field assignment.
type GameResult uint8

const (
	Ongoing GameResult = iota
	Win
	Draw
	Loss
)

// IsTerminal reports whether r denotes a finished game.
func (r GameResult) IsTerminal() bool { return r != Ongoing }

// drawScore nudges a draw's value by whether it was reached on the root
// side's own turn, a small contempt-like asymmetry rather than a flat 0.5.
func drawScore(ctm, rootCtm chesstypes.Color) float32 {
	score := float32(0.5) - 0.01
	if ctm == rootCtm {
		score += 0.02
	}
	return score
}

// Score returns r's backpropagated value from ctm's perspective. ok is
// false for Ongoing, signalling the caller must run a network evaluation.
func (r GameResult) Score(ctm, rootCtm chesstypes.Color) (score float32, ok bool) {
	switch r {
	case Win:
		return 1.0, true
	case Draw:
		return drawScore(ctm, rootCtm), true
	case Loss:
		return 0.0, true
	default:
		return 0, false
	}
}

// Node is one vertex of the search tree.
type Node struct {
	Mov          chesstypes.Move
	FirstChild   uint32
	ChildCount   uint8
	Visits       uint32
	TotalScore   float32
	Result       GameResult
	Policy       float32
	GiniImpurity float32
}

// AverageScore returns the node's mean backpropagated score.
func (n *Node) AverageScore() float32 {
	if n.Visits == 0 {
		return 0
	}
	return n.TotalScore / float32(n.Visits)
}

// ChildrenRange returns the half-open range of packed node references
// (already including their half bit) spanning n's children.
func (n *Node) ChildrenRange() (start, end uint32) {
	return n.FirstChild, n.FirstChild + uint32(n.ChildCount)
}
