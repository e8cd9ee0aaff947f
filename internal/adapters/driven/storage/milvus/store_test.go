package milvus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreToDistance(t *testing.T) {
	tests := []struct {
		name     string
		score    float32
		expected float64
	}{
		{"identical direction", 1.0, 0.0},
		{"orthogonal", 0.0, 0.5},
		{"opposite direction", -1.0, 1.0},
		{"clamps above one", 1.0001, 0.0},
		{"clamps below minus one", -1.0001, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := scoreToDistance(tt.score)
			assert.InDelta(t, tt.expected, d, 1e-6)
			assert.GreaterOrEqual(t, d, 0.0)
			assert.LessOrEqual(t, d, 1.0)
		})
	}
}
