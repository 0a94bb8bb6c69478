package value

import (
	"testing"

	"github.com/anura-engine/anura/internal/attacks"
	"github.com/anura-engine/anura/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	attacks.Init()
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

func TestEvaluateIsDeterministic(t *testing.T) {
	n, err := Default()
	require.NoError(t, err)

	pos, err := position.ParseFEN(position.InitialFEN)
	require.NoError(t, err)

	a := n.Evaluate(&pos)
	b := n.Evaluate(&pos)
	assert.Equal(t, a, b, "evaluating the same position twice must return the same score")
}

func TestEvaluateRunsFromEitherSide(t *testing.T) {
	n, err := Default()
	require.NoError(t, err)

	white, err := position.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	black, err := position.ParseFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)

	assert.NotPanics(t, func() { n.Evaluate(&white) })
	assert.NotPanics(t, func() { n.Evaluate(&black) })
}
