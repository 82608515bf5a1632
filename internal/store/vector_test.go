package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeAndParseEmbeddingRoundTrip(t *testing.T) {
	vec := []float32{0.1, -0.2, 3.5}
	text := serializeEmbedding(vec)
	require.Equal(t, "[0.1,-0.2,3.5]", text)

	parsed, err := parseEmbedding(text)
	require.NoError(t, err)
	require.Equal(t, vec, parsed)
}

func TestCheckDimensionRejectsMismatch(t *testing.T) {
	require.Error(t, checkDimension(make([]float32, 100), 768))
	require.NoError(t, checkDimension(make([]float32, 768), 768))
}
