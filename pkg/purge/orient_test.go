package purge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReversePurge(t *testing.T) {
	tests := []struct {
		name         string
		anchorX      float64
		firstObjectX float64
		want         bool
	}{
		{"object far right keeps direction", 0, 120, false},
		{"object near left mirrors", 0, 10, true},
		{"object at upper end keeps direction", 0, 66, false},
		{"object at lower end mirrors", 0, 0, true},
		{"equidistant keeps direction", 0, 33, false},
		{"shifted anchor, object right", 92, 150, false},
		{"shifted anchor, object left", 92, 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reversePurge(tt.anchorX, 66, tt.firstObjectX))
		})
	}
}

func TestMirrorXSelfInverse(t *testing.T) {
	for _, x := range []float64{0, 15, 33, 51, 66, -5, 100} {
		assert.InDelta(t, x, mirrorX(92, 66, mirrorX(92, 66, x)), 1e-12)
	}
}

func TestTravelCrossesPurge(t *testing.T) {
	tests := []struct {
		name       string
		fromX, toX float64
		lo, hi     float64
		want       bool
	}{
		{"away from upper end", 66, 120, 0, 66, false},
		{"away from lower end", 0, -10, 0, 66, false},
		{"back across from upper end", 66, 10, 0, 66, true},
		{"back across from lower end", 0, 50, 0, 66, true},
		{"fully outside", 100, 120, 0, 66, false},
		{"touching endpoint only", 66, 66, 0, 66, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, travelCrossesPurge(tt.fromX, tt.toX, tt.lo, tt.hi))
		})
	}
}

// TestOrientationNeverCrosses sweeps object positions across the plate and
// checks the geometric contract: the travel from the chosen purge end to the
// object never re-crosses the purge span when the object is outside it, and
// always departs from the nearer end.
func TestOrientationNeverCrosses(t *testing.T) {
	const span = 66.0
	for slot := 0; slot < 5; slot++ {
		anchor := float64(slot) * 46
		lo, hi := anchor, anchor+span
		for objX := -20.0; objX <= 260; objX += 2.5 {
			end := hi
			if reversePurge(anchor, span, objX) {
				end = lo
			}
			other := lo + hi - end

			if objX < lo || objX > hi {
				assert.False(t, travelCrossesPurge(end, objX, lo, hi),
					"slot %d objX %.1f: travel from %.1f crosses [%.1f, %.1f]", slot, objX, end, lo, hi)
			}
			assert.LessOrEqual(t, math.Abs(end-objX), math.Abs(other-objX),
				"slot %d objX %.1f: chose the farther end", slot, objX)
		}
	}
}
