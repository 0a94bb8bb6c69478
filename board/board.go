// Package board implements the ordered stack of Position snapshots backing
// make/undo, plus 50-move and repetition draw detection.
package board

import (
	"github.com/anura-engine/anura/chesstypes"
	"github.com/anura-engine/anura/position"
)

// Board owns the history of Position snapshots for one game or search path.
// make_move pushes, undo_move pops; ctm always mirrors the top snapshot's
// ActiveColor, per spec.md §3.
type Board struct {
	stack []position.Position
	ply   int
}

// NewFromFEN builds a Board whose only snapshot is the parsed position.
func NewFromFEN(fen string) (*Board, error) {
	pos, err := position.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Board{stack: []position.Position{pos}}, nil
}

// NewInitial builds a Board at the standard starting position.
func NewInitial() *Board {
	b, err := NewFromFEN(position.InitialFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// Top returns the current (most recent) Position snapshot.
func (b *Board) Top() *position.Position { return &b.stack[len(b.stack)-1] }

// Ctm returns the side to move of the current snapshot.
func (b *Board) Ctm() chesstypes.Color { return b.Top().ActiveColor }

// Ply returns the number of half-moves played since the board was loaded.
func (b *Board) Ply() int { return b.ply }

// MakeMove applies m to the top snapshot, pushing the resulting Position.
// m must come from position.GenerateLegalMoves(b.Top()).
func (b *Board) MakeMove(m chesstypes.Move) {
	next := position.ApplyMove(*b.Top(), m)
	b.stack = append(b.stack, next)
	b.ply++
}

// UndoMove pops the most recent snapshot. Panics if the stack would become
// empty, per spec.md §7's logic-precondition policy (a programming error,
// not a recoverable condition).
func (b *Board) UndoMove() {
	if len(b.stack) <= 1 {
		panic("board: undo_move called with empty history")
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.ply--
}

// LegalMoves returns the legal moves from the current top snapshot.
func (b *Board) LegalMoves() chesstypes.MoveList {
	top := b.Top()
	return position.GenerateLegalMoves(top)
}

// InCheck reports whether the side to move is in check in the current
// snapshot.
func (b *Board) InCheck() bool { return b.Top().Checkers != 0 }

// IsDrawn reports whether the current position is drawn by the 50-move
// rule or by a twofold repetition found while walking backward through the
// history stack. A single historical repetition (not three) suffices
// inside search, per spec.md §4.2/§9 — a twofold in the tree predicts an
// eventual threefold under optimal play; Game-level UCI reporting uses the
// stricter IsThreefoldRepetition instead.
func (b *Board) IsDrawn() bool {
	top := b.Top()
	if top.HalfmoveClock >= 100 {
		return true
	}

	limit := top.HalfmoveClock + 1
	if limit > len(b.stack)-1 {
		limit = len(b.stack) - 1
	}
	for i := 2; i <= limit; i += 2 {
		idx := len(b.stack) - 1 - i
		if idx < 0 {
			break
		}
		if b.stack[idx].Hash == top.Hash {
			return true
		}
	}
	return false
}

// IsThreefoldRepetition reports whether the current position's hash has
// occurred at least twice before in the full history stack — the stricter
// check used for host-facing (UCI) draw reporting, as opposed to
// IsDrawn's twofold-inside-search heuristic.
func (b *Board) IsThreefoldRepetition() bool {
	top := b.Top()
	count := 0
	for i := len(b.stack) - 1; i >= 0; i -= 2 {
		if b.stack[i].Hash == top.Hash {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

// IsInsufficientMaterial reports whether neither side has enough material
// to deliver checkmate (K vs K, K+N vs K, K+B vs K with same-color bishops
// only are not distinguished here; this is the conservative K-vs-K and
// K-vs-K+minor check the teacher's game.IsInsufficientMaterial performs).
func (b *Board) IsInsufficientMaterial() bool {
	top := b.Top()
	nonKing := top.Occupancy() &^ (top.Pieces[chesstypes.King])
	if nonKing == 0 {
		return true
	}
	if top.Pieces[chesstypes.Pawn]|top.Pieces[chesstypes.Rook]|top.Pieces[chesstypes.Queen] != 0 {
		return false
	}
	minorCount := 0
	for bb := uint64(nonKing); bb != 0; bb &= bb - 1 {
		minorCount++
	}
	return minorCount <= 1
}
