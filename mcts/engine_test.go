package mcts

import (
	"testing"
	"time"

	"github.com/anura-engine/anura/board"
	"github.com/anura-engine/anura/nets/policy"
	"github.com/anura-engine/anura/nets/value"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCentipawnsEdges(t *testing.T) {
	assert.Equal(t, int32(mateScore), ToCentipawns(1))
	assert.Equal(t, int32(-mateScore), ToCentipawns(0))
	assert.Equal(t, int32(0), ToCentipawns(0.5))
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	valueNet, err := value.Default()
	require.NoError(t, err)
	policyNet, err := policy.Default()
	require.NoError(t, err)
	return NewEngine(valueNet, policyNet, 1, zerolog.Nop())
}

func TestSearchReturnsLegalMove(t *testing.T) {
	b := board.NewInitial()
	e := newTestEngine(t)

	limiters := &Limiters{}
	limiters.LoadValues(0, 0, 200, 0, 0)

	before := *b.Top()
	best := e.Search(b, limiters, false, &Options{}, DefaultTunables())

	assert.Equal(t, before, *b.Top(), "search must leave the caller's board untouched")

	legal := b.LegalMoves()
	found := false
	for _, m := range legal.Slice() {
		if m == best {
			found = true
			break
		}
	}
	assert.True(t, found, "search returned a move not in the legal move list")
}

func TestSearchReusesTreeAcrossMoves(t *testing.T) {
	b := board.NewInitial()
	e := newTestEngine(t)

	limiters := &Limiters{}
	limiters.LoadValues(0, 0, 200, 0, 0)

	first := e.Search(b, limiters, false, &Options{}, DefaultTunables())
	b.MakeMove(first)

	require.True(t, e.hasPrevRoot)
	second := e.Search(b, limiters, false, &Options{}, DefaultTunables())

	legal := b.LegalMoves()
	found := false
	for _, m := range legal.Slice() {
		if m == second {
			found = true
			break
		}
	}
	assert.True(t, found)
}

func TestSearchRespectsMoveTimeLimit(t *testing.T) {
	b := board.NewInitial()
	e := newTestEngine(t)

	limiters := &Limiters{}
	limiters.LoadValues(0, 0, 0, 0, 50*time.Millisecond)

	start := time.Now()
	e.Search(b, limiters, false, &Options{}, DefaultTunables())
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestEngineNewGameClearsTree(t *testing.T) {
	b := board.NewInitial()
	e := newTestEngine(t)

	limiters := &Limiters{}
	limiters.LoadValues(0, 0, 50, 0, 0)
	e.Search(b, limiters, false, &Options{}, DefaultTunables())

	e.NewGame()
	assert.True(t, e.tree.IsEmpty())
	assert.False(t, e.hasPrevRoot)
}
