package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev([]float64{1}))
	assert.InDelta(t, 1.0, StdDev([]float64{1, 2, 3}), 1e-9)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min, max float64
		want     float64
	}{
		{"below range", -0.5, 0, 1, 0},
		{"in range", 0.42, 0, 1, 0.42},
		{"above range", 1.7, 0.2, 0.95, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.value, tt.min, tt.max))
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.87, Round2(0.8749))
	assert.Equal(t, 0.88, Round2(0.875))
}
