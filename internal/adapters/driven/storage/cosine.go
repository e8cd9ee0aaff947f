// Package storage holds code shared by the vector store backends.
package storage

import "math"

// CosineDistance computes cosine distance between two vectors, scaled
// to [0,1]: 0 for identical direction, 0.5 for orthogonal, 1 for
// opposite. A zero-norm vector is treated as orthogonal to everything.
//
// Every backend ranks by this metric so the similarity conversion
// downstream holds regardless of the configured backend.
func CosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.5
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	// Clamp against float drift before scaling.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}

	return (1 - cos) / 2
}
