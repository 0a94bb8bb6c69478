package chesstypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquareRankAndFile(t *testing.T) {
	sq := Square(12) // e2
	assert.Equal(t, 1, sq.Rank())
	assert.Equal(t, 4, sq.File())
}

func TestSquareFlips(t *testing.T) {
	e2 := Square(12)
	assert.Equal(t, Square(52), e2.FlipRank()) // e7
	assert.Equal(t, e2, e2.FlipRank().FlipRank())
	assert.Equal(t, Square(11), e2.FlipFile()) // d2
}

func TestSquareStringAndParseRoundTrip(t *testing.T) {
	for sq := Square(0); sq < 64; sq++ {
		assert.Equal(t, sq, SquareFromString(sq.String()))
	}
	assert.Equal(t, "-", NoSquare.String())
	assert.Equal(t, NoSquare, SquareFromString("-"))
}

func TestSquareFromStringRejectsOutOfRange(t *testing.T) {
	assert.Equal(t, NoSquare, SquareFromString("i9"))
	assert.Equal(t, NoSquare, SquareFromString("z"))
}

func TestPieceMakeAndExtract(t *testing.T) {
	p := MakePiece(White, Knight)
	assert.Equal(t, White, p.Color())
	assert.Equal(t, Knight, p.Type())
	assert.Equal(t, byte('N'), p.Symbol())

	bp := MakePiece(Black, Queen)
	assert.Equal(t, byte('q'), bp.Symbol())
}

func TestNoPieceSymbol(t *testing.T) {
	assert.Equal(t, byte('.'), NoPiece.Symbol())
}

func TestColorOther(t *testing.T) {
	assert.Equal(t, Black, White.Other())
	assert.Equal(t, White, Black.Other())
}
