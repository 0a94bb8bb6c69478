package policy

import (
	"testing"

	"github.com/anura-engine/anura/chesstypes"
	"github.com/anura-engine/anura/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIndexIsIdempotent(t *testing.T) {
	InitIndex()
	first := OutputSize
	InitIndex()
	assert.Equal(t, first, OutputSize)
}

func TestOutputSizeMatchesDocumentedTotal(t *testing.T) {
	InitIndex()
	assert.Equal(t, outSize, OutputSize, "the derived output size must match spec.md's documented 1880 slots")
}

func TestDefaultLoadsEmbeddedWeights(t *testing.T) {
	n, err := Default()
	require.NoError(t, err)
	assert.NotNil(t, n)
}

func TestLoadRejectsWrongSizedBlob(t *testing.T) {
	_, err := Load([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestLoadRoundTripsWeights(t *testing.T) {
	blob := make([]byte, blobSize)
	n, err := Load(blob)
	require.NoError(t, err)
	assert.NotNil(t, n)
}

func TestMoveIndexWithinOutputRange(t *testing.T) {
	InitIndex()
	m := chesstypes.NewMove(chesstypes.Square(12), chesstypes.Square(28), chesstypes.Normal)
	idx := MoveIndex(m, chesstypes.White, false)
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, OutputSize)
}

func TestMoveIndexDiffersForDifferentDestinations(t *testing.T) {
	InitIndex()
	a := chesstypes.NewMove(chesstypes.Square(0), chesstypes.Square(8), chesstypes.Normal)
	b := chesstypes.NewMove(chesstypes.Square(0), chesstypes.Square(16), chesstypes.Normal)
	assert.NotEqual(t, MoveIndex(a, chesstypes.White, false), MoveIndex(b, chesstypes.White, false))
}

func TestMoveIndexPromotionsFallInPromoBlock(t *testing.T) {
	InitIndex()
	m := chesstypes.NewMove(chesstypes.Square(48), chesstypes.Square(56), chesstypes.PromoQueen)
	idx := MoveIndex(m, chesstypes.White, false)
	assert.GreaterOrEqual(t, idx, nonPromoSlots)
	assert.Less(t, idx, OutputSize)
}

func TestAccumulatorLoadAndScore(t *testing.T) {
	n, err := Default()
	require.NoError(t, err)

	pos, err := position.ParseFEN(position.InitialFEN)
	require.NoError(t, err)

	acc := NewAccumulator(n)
	acc.Load(n, &pos)

	ctm, flipFile := Context(&pos)
	m := chesstypes.NewMove(chesstypes.Square(12), chesstypes.Square(28), chesstypes.Normal) // e2e4
	a := Score(n, acc, m, ctm, flipFile)
	b := Score(n, acc, m, ctm, flipFile)
	assert.Equal(t, a, b, "scoring the same move twice against the same accumulator must be stable")
}
