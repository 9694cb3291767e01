// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
	}{
		{"start returns y1", 0, 1, 2, 3, 0, 1},
		{"end returns y2", 0, 1, 2, 3, 1, 2},
		{"linear midpoint", 0, 1, 2, 3, 0.5, 1.5},
		{"flat", 0.25, 0.25, 0.25, 0.25, 0.7, 0.25},
		{"symmetric peak", 0, 1, 1, 0, 0.5, 1.125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			assert.InDelta(t, tt.want, got, 1e-5)
		})
	}
}

func TestParabolicPeak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		l, c, r float64
		want    float64
	}{
		{"centred", 0.5, 1, 0.5, 0},
		{"flat", 1, 1, 1, 0},
		// samples of -(x-0.25)^2
		{"right of centre", -1.5625, -0.0625, -0.5625, 0.25},
		{"clamped", 0, 0.1, 1, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, ParabolicPeak(tt.l, tt.c, tt.r), 1e-9)
		})
	}
}
