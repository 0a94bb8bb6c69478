package policy

import (
	_ "embed"

	"github.com/anura-engine/anura/chesstypes"
	"github.com/anura-engine/anura/internal/attacks"
	"github.com/anura-engine/anura/internal/bitutil"
	"github.com/pkg/errors"
)

// Network topology per spec.md §4.3: 768*4 side-to-move-relative input
// features (base placement plus threat/defence/counter-attack planes),
// one hidden layer, and the 1880-slot move-indexed output computed in
// index.go. Weights are int8 throughout; the accumulator (pre-activation
// hidden state) is int16, wide enough for SCReLU's squared range.
const (
	planeCount = 4
	inputSize  = 768 * planeCount
	l1Size     = 256
	outSize    = 1880
	qa         = 128
	qb         = 128
)

//go:embed weights/policy.bin
var defaultWeights []byte

// Network holds the quantised weights for one loaded policy network.
type Network struct {
	featureWeights [inputSize][l1Size]int8
	featureBiases  [l1Size]int8
	outputWeights  [outSize][l1Size]int8
	outputBias     [outSize]int8
}

const blobSize = inputSize*l1Size + l1Size + outSize*l1Size + outSize

// Default loads the policy network embedded at build time.
func Default() (*Network, error) {
	InitIndex()
	return Load(defaultWeights)
}

// Load parses a raw little-endian weight blob matching spec.md §6's policy
// network layout (output weights already shipped output-major, per
// SPEC_FULL.md §8 — no runtime transpose needed).
func Load(blob []byte) (*Network, error) {
	if len(blob) != blobSize {
		return nil, errors.Errorf("policy weights: expected %d bytes, got %d", blobSize, len(blob))
	}
	n := &Network{}
	off := 0
	for i := 0; i < inputSize; i++ {
		for j := 0; j < l1Size; j++ {
			n.featureWeights[i][j] = int8(blob[off])
			off++
		}
	}
	for i := range n.featureBiases {
		n.featureBiases[i] = int8(blob[off])
		off++
	}
	for i := 0; i < outSize; i++ {
		for j := 0; j < l1Size; j++ {
			n.outputWeights[i][j] = int8(blob[off])
			off++
		}
	}
	for i := range n.outputBias {
		n.outputBias[i] = int8(blob[off])
		off++
	}
	return n, nil
}

// PositionView is the surface the policy network needs from a
// position.Position. Wider than nets/value's PositionView because the
// threat/defence planes need full per-type occupancy to recompute attacked
// squares, not just per-square piece lookups.
type PositionView interface {
	PieceAt(sq chesstypes.Square) chesstypes.Piece
	Occupied() chesstypes.Bitboard
	SideToMove() chesstypes.Color
	KingSquare(c chesstypes.Color) chesstypes.Square
	ColorBB(c chesstypes.Color) chesstypes.Bitboard
	PieceBB(t chesstypes.PieceType) chesstypes.Bitboard
}

// Accumulator holds the hidden-layer pre-activation state for one position.
type Accumulator struct {
	l1 [l1Size]int16
}

// NewAccumulator returns an accumulator initialised to n's feature biases.
func NewAccumulator(n *Network) *Accumulator {
	acc := &Accumulator{}
	acc.Clear(n)
	return acc
}

// Clear resets the accumulator to n's feature biases, discarding any loaded
// position.
func (a *Accumulator) Clear(n *Network) {
	for i := range a.l1 {
		a.l1[i] = int16(n.featureBiases[i])
	}
}

func activation(x int16) int32 {
	if x < 0 {
		x = 0
	}
	if x > qa {
		x = qa
	}
	v := int32(x)
	return v * v
}

// attackedSquares returns every square attacked by every piece of color c,
// mirroring position.squareAttackedBy's per-piece-type union but computed
// for the whole board at once (threat/defence planes need it per square,
// not one square at a time).
func attackedSquares(pv PositionView, occ chesstypes.Bitboard, c chesstypes.Color) chesstypes.Bitboard {
	var att chesstypes.Bitboard
	own := pv.ColorBB(c)

	for bb := uint64(pv.PieceBB(chesstypes.Pawn) & own); bb != 0; {
		sq := chesstypes.Square(bitutil.PopLsb(&bb))
		att |= attacks.PawnAttacks(sq, c)
	}
	for bb := uint64(pv.PieceBB(chesstypes.Knight) & own); bb != 0; {
		sq := chesstypes.Square(bitutil.PopLsb(&bb))
		att |= attacks.KnightAttacks(sq)
	}
	for bb := uint64(pv.PieceBB(chesstypes.King) & own); bb != 0; {
		sq := chesstypes.Square(bitutil.PopLsb(&bb))
		att |= attacks.KingAttacks(sq)
	}
	for bb := uint64((pv.PieceBB(chesstypes.Bishop) | pv.PieceBB(chesstypes.Queen)) & own); bb != 0; {
		sq := chesstypes.Square(bitutil.PopLsb(&bb))
		att |= attacks.BishopAttacks(sq, occ)
	}
	for bb := uint64((pv.PieceBB(chesstypes.Rook) | pv.PieceBB(chesstypes.Queen)) & own); bb != 0; {
		sq := chesstypes.Square(bitutil.PopLsb(&bb))
		att |= attacks.RookAttacks(sq, occ)
	}
	return att
}

// Context computes the side-to-move and king-file mirroring used by both
// input features and the move index, per spec.md §4.3/§4.3.1.
func Context(pv PositionView) (ctm chesstypes.Color, flipFile bool) {
	ctm = pv.SideToMove()
	king := pv.KingSquare(ctm)
	if ctm == chesstypes.Black {
		king = king.FlipRank()
	}
	return ctm, king.File() >= 4
}

// planeFeatureIndex mirrors nets/value's featureIndex but leaves room for a
// plane offset, since the policy net's input is four concatenated 768-wide
// blocks rather than one.
func planeFeatureIndex(piece chesstypes.Piece, sq chesstypes.Square, ctm chesstypes.Color, flipFile bool, plane int) int {
	s := sq
	if ctm == chesstypes.Black {
		s = s.FlipRank()
	}
	if flipFile {
		s = s.FlipFile()
	}
	colorBit := 0
	if piece.Color() != ctm {
		colorBit = 1
	}
	return plane*768 + (colorBit*6+int(piece.Type()))*64 + int(s)
}

// Load accumulates every occupied square's base/threat/defence/attack
// features into a, per spec.md §4.3's "base 768 concatenated with per-square
// threat and defence planes" description.
//
// The base plane (0) is the value network's placement encoding. Plane 1
// marks pieces under attack by the opponent (threat against us); plane 2
// marks pieces defended by their own side (our defence); plane 3 marks
// pieces that themselves attack at least one enemy piece (our counter-
// attacks). Each plane reuses the base's (color, type, square) index so the
// four blocks concatenate to the 768*4 input spec.md §4.3.1 fixes.
func (a *Accumulator) Load(n *Network, pv PositionView) {
	a.Clear(n)
	ctm, flipFile := Context(pv)
	occ := pv.Occupied()

	attacksOf := [2]chesstypes.Bitboard{
		chesstypes.Black: attackedSquares(pv, occ, chesstypes.Black),
		chesstypes.White: attackedSquares(pv, occ, chesstypes.White),
	}

	for bb := uint64(occ); bb != 0; {
		sq := chesstypes.Square(bitutil.PopLsb(&bb))
		piece := pv.PieceAt(sq)
		own, opp := piece.Color(), piece.Color().Other()

		a.activate(n, planeFeatureIndex(piece, sq, ctm, flipFile, 0))

		if attacksOf[opp]&sq.Bitboard() != 0 {
			a.activate(n, planeFeatureIndex(piece, sq, ctm, flipFile, 1))
		}
		if attacksOf[own]&sq.Bitboard() != 0 {
			a.activate(n, planeFeatureIndex(piece, sq, ctm, flipFile, 2))
		}
		if pieceAttacks(piece, sq, occ)&pv.ColorBB(opp) != 0 {
			a.activate(n, planeFeatureIndex(piece, sq, ctm, flipFile, 3))
		}
	}
}

// pieceAttacks returns the squares attacked by a single piece standing on
// sq, used only for the per-piece counter-attack plane (plane 3); the
// whole-board attackedSquares helper above is cheaper when every piece of
// one color is wanted at once, which is what planes 1 and 2 need.
func pieceAttacks(piece chesstypes.Piece, sq chesstypes.Square, occ chesstypes.Bitboard) chesstypes.Bitboard {
	switch piece.Type() {
	case chesstypes.Pawn:
		return attacks.PawnAttacks(sq, piece.Color())
	case chesstypes.Knight:
		return attacks.KnightAttacks(sq)
	case chesstypes.King:
		return attacks.KingAttacks(sq)
	case chesstypes.Bishop:
		return attacks.BishopAttacks(sq, occ)
	case chesstypes.Rook:
		return attacks.RookAttacks(sq, occ)
	default:
		return attacks.QueenAttacks(sq, occ)
	}
}

func (a *Accumulator) activate(n *Network, idx int) {
	w := &n.featureWeights[idx]
	for i := range a.l1 {
		a.l1[i] += int16(w[i])
	}
}

// Score returns move m's policy logit given the accumulator loaded for the
// position m was generated from, per spec.md §4.3's per-move score formula.
func Score(n *Network, a *Accumulator, m chesstypes.Move, ctm chesstypes.Color, flipFile bool) float32 {
	idx := MoveIndex(m, ctm, flipFile)
	var sum int32
	for i := 0; i < l1Size; i++ {
		sum += int32(n.outputWeights[idx][i]) * activation(a.l1[i])
	}
	return float32(sum)/(qa*qb) + float32(n.outputBias[idx])/qb
}
