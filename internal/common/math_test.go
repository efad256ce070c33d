package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"positive number", 5, 5},
		{"negative number", -5, 5},
		{"zero", 0, 0},
		{"min int special case", math.MinInt32 + 1, math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Abs(tt.input))
		})
	}
}

func TestMinMax(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int
		min, max int
	}{
		{"a smaller", 3, 5, 3, 5},
		{"b smaller", 7, 2, 2, 7},
		{"equal", 4, 4, 4, 4},
		{"negative numbers", -5, -3, -5, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.min, Min(tt.a, tt.b))
			assert.Equal(t, tt.max, Max(tt.a, tt.b))
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		expected float64
	}{
		{"inside", 0.4, 0.4},
		{"below", -3, 0},
		{"above", 7.5, 1},
		{"at bound", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.v, 0, 1))
		})
	}
}

func TestInverseDistance(t *testing.T) {
	assert.Equal(t, 1.0, InverseDistance(0))
	assert.Equal(t, 0.5, InverseDistance(1))
	assert.Equal(t, 0.5, InverseDistance(-1))
	assert.Greater(t, InverseDistance(2), InverseDistance(3))
}
