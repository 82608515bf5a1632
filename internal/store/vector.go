package store

import (
	"fmt"
	"strconv"
	"strings"
)

// serializeEmbedding renders a vector as pgvector's textual literal
// ("[f1,f2,...]"), the format the call site casts with "::vector".
func serializeEmbedding(vec []float32) string {
	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// checkDimension rejects a vector whose length doesn't match the column's
// fixed dimension (spec §4.6 vector column codec).
func checkDimension(vec []float32, want int) error {
	if len(vec) != want {
		return fmt.Errorf("store: expected %d-dimensional vector, got %d", want, len(vec))
	}
	return nil
}

// parseEmbedding decodes a pgvector textual literal back into a []float32.
func parseEmbedding(text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")
	if text == "" {
		return nil, nil
	}
	fields := strings.Split(text, ",")
	out := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return nil, fmt.Errorf("store: parse embedding component %d: %w", i, err)
		}
		out[i] = float32(v)
	}
	return out, nil
}
