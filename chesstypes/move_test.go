package chesstypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveEncodingRoundTrip(t *testing.T) {
	m := NewMove(Square(12), Square(28), PromoQueen)
	assert.Equal(t, Square(12), m.From())
	assert.Equal(t, Square(28), m.To())
	assert.Equal(t, PromoQueen, m.Flag())
}

func TestMoveIsNull(t *testing.T) {
	var m Move
	assert.True(t, m.IsNull())
	assert.False(t, NewMove(Square(12), Square(28), Normal).IsNull())
}

func TestMoveStringFormatsLongAlgebraic(t *testing.T) {
	assert.Equal(t, "e2e4", NewMove(Square(12), Square(28), Normal).String())
	assert.Equal(t, "a7a8q", NewMove(Square(48), Square(56), PromoQueen).String())
	assert.Equal(t, "a7a8n", NewMove(Square(48), Square(56), PromoKnight).String())
}

func TestMoveFlagIsPromotion(t *testing.T) {
	assert.True(t, PromoKnight.IsPromotion())
	assert.True(t, PromoQueen.IsPromotion())
	assert.False(t, Normal.IsPromotion())
	assert.False(t, EnPassant.IsPromotion())
}

func TestMoveFlagPromotedType(t *testing.T) {
	assert.Equal(t, Knight, PromoKnight.PromotedType())
	assert.Equal(t, Queen, PromoQueen.PromotedType())
	assert.Equal(t, NoPieceType, Normal.PromotedType())
}

func TestMoveListPushAndSlice(t *testing.T) {
	var list MoveList
	list.Push(NewMove(Square(0), Square(1), Normal))
	list.Push(NewMove(Square(1), Square(2), Normal))
	assert.Equal(t, 2, list.Count)
	assert.Len(t, list.Slice(), 2)
}
