package cli

import (
	"strings"
	"testing"

	"github.com/anura-engine/anura/chesstypes"
	"github.com/anura-engine/anura/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPositionInitial(t *testing.T) {
	p, err := position.ParseFEN(position.InitialFEN)
	require.NoError(t, err)

	out := FormatPosition(&p)
	assert.Contains(t, out, "Active color: white")
	assert.Contains(t, out, "En passant: none")
	assert.Contains(t, out, "Castling rights: KQkq")
	assert.Equal(t, 8, strings.Count(out, "♙"))
	assert.Equal(t, 8, strings.Count(out, "♟"))
}

func TestFormatBitboardMarksOccupiedSquares(t *testing.T) {
	bb := chesstypes.Square(0).Bitboard() | chesstypes.Square(63).Bitboard()
	out := FormatBitboard(bb, 'X')
	assert.Equal(t, 2, strings.Count(out, "X"))
}
