// Package value implements the quantised value-network forward pass:
// 768 side-to-move-relative input features, one hidden layer, 16 output
// buckets selected by total piece count, per spec.md §4.3.
package value

import (
	_ "embed"
	"encoding/binary"

	"github.com/anura-engine/anura/chesstypes"
	"github.com/pkg/errors"
)

const (
	inputSize  = 768
	l1Size     = 1024
	buckets    = 16
	qa         = 256
	qb         = 64
	evalScale  = 400
	bucketSpan = 32 / buckets
)

//go:embed weights/value.bin
var defaultWeights []byte

// Network holds the quantised weights for one loaded value network.
type Network struct {
	featureWeights [buckets][inputSize][l1Size]int16
	featureBiases  [l1Size]int16
	outputWeights  [l1Size][buckets]int16
	outputBias     [buckets]int16
}

const blobSize = buckets*inputSize*l1Size*2 + l1Size*2 + l1Size*buckets*2 + buckets*2

// Default loads the value network embedded at build time.
func Default() (*Network, error) { return Load(defaultWeights) }

// Load parses a raw little-endian weight blob matching spec.md §6's value
// network layout. Panics are not raised here; the caller (cmd/anura) stops
// at startup on error through its logger's Fatal, keeping that decision
// visible at the call site.
func Load(blob []byte) (*Network, error) {
	if len(blob) != blobSize {
		return nil, errors.Errorf("value weights: expected %d bytes, got %d", blobSize, len(blob))
	}
	n := &Network{}
	off := 0
	for b := 0; b < buckets; b++ {
		for i := 0; i < inputSize; i++ {
			for j := 0; j < l1Size; j++ {
				n.featureWeights[b][i][j] = int16(binary.LittleEndian.Uint16(blob[off:]))
				off += 2
			}
		}
	}
	for i := range n.featureBiases {
		n.featureBiases[i] = int16(binary.LittleEndian.Uint16(blob[off:]))
		off += 2
	}
	for i := 0; i < l1Size; i++ {
		for b := 0; b < buckets; b++ {
			n.outputWeights[i][b] = int16(binary.LittleEndian.Uint16(blob[off:]))
			off += 2
		}
	}
	for b := range n.outputBias {
		n.outputBias[b] = int16(binary.LittleEndian.Uint16(blob[off:]))
		off += 2
	}
	return n, nil
}

// PositionView is the minimal surface the value network needs from a
// position.Position, kept narrow to avoid an import cycle with the
// position package (which never needs to know about networks).
type PositionView interface {
	PieceAt(sq chesstypes.Square) chesstypes.Piece
	Occupied() chesstypes.Bitboard
	SideToMove() chesstypes.Color
	KingSquare(c chesstypes.Color) chesstypes.Square
}

func featureIndex(piece chesstypes.Piece, sq chesstypes.Square, ctm chesstypes.Color, flipFile bool) int {
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
	return (colorBit*6+int(piece.Type()))*64 + int(s)
}

func activation(x int32) int64 {
	if x < 0 {
		x = 0
	}
	if x > qa {
		x = qa
	}
	v := int64(x)
	return v * v
}

// Evaluate runs the forward pass for pos, returning a centipawn-like score
// from the side-to-move's perspective, scaled by evalScale.
func (n *Network) Evaluate(pos PositionView) int32 {
	ctm := pos.SideToMove()
	king := pos.KingSquare(ctm)
	flipFile := false
	if ctm == chesstypes.Black {
		king = king.FlipRank()
	}
	if king.File() >= 4 {
		flipFile = true
	}

	pieceCount := 0
	for sq := chesstypes.Square(0); sq < 64; sq++ {
		if pos.Occupied()&sq.Bitboard() != 0 {
			pieceCount++
		}
	}
	bucket := (pieceCount - 2) / bucketSpan
	if bucket < 0 {
		bucket = 0
	}
	if bucket > buckets-1 {
		bucket = buckets - 1
	}

	var acc [l1Size]int32
	for i := range acc {
		acc[i] = int32(n.featureBiases[i])
	}
	for sq := chesstypes.Square(0); sq < 64; sq++ {
		if pos.Occupied()&sq.Bitboard() == 0 {
			continue
		}
		piece := pos.PieceAt(sq)
		idx := featureIndex(piece, sq, ctm, flipFile)
		w := &n.featureWeights[bucket][idx]
		for i := 0; i < l1Size; i++ {
			acc[i] += int32(w[i])
		}
	}

	var sum int64
	for i := 0; i < l1Size; i++ {
		sum += activation(acc[i]) * int64(n.outputWeights[i][bucket])
	}
	out := sum/qa + int64(n.outputBias[bucket])
	return int32(out * evalScale / (qa * qb))
}
