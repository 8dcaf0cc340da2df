// Package semantic provides embedding-based text similarity: an Encoder
// abstraction over embedding backends, a Manager that owns the lazy
// load/cache/swap lifecycle of the configured model, and a client for a
// local embedding server.
package semantic

import "math"

// Encoder generates vector embeddings from text.
type Encoder interface {
	// Embed returns a vector embedding for the given text.
	Embed(text string) ([]float32, error)

	// Dimension returns the dimensionality of the output vectors.
	Dimension() int
}

// Cosine computes the cosine similarity between two vectors. Mismatched
// lengths or zero vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
