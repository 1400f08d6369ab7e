package purge

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mk4tools/purgeshift/pkg/errors"
	"github.com/mk4tools/purgeshift/pkg/gcode"
)

// blockIndices lists every line of startCode the shifter may touch.
var blockIndices = map[int]bool{
	3: true, 5: true, 6: true, 7: true, // clean + probe
	10: true, 12: true, 13: true, // purge
}

func TestProcessReversed(t *testing.T) {
	lines := parseFixture(t, startCode)
	out, res, err := Process(lines, Options{Slot: 2})
	require.NoError(t, err)

	// Slot 2 anchors at X92; the object at X120 is nearer the lower end of
	// the purge span [92, 158], so the purge direction is mirrored.
	assert.Equal(t, 2, res.Slot)
	assert.Equal(t, 92.0, res.OffsetX)
	assert.Equal(t, 0.0, res.OffsetY)
	assert.True(t, res.Reversed)
	assert.Equal(t, 120.0, res.FirstObjectX)
	assert.Equal(t, 7, res.LinesChanged)

	require.Len(t, out, len(lines))
	assert.Equal(t, "G1 X134 Y-4 Z5 F4800\n", out[3].Raw)
	assert.Equal(t, "G29 P9 X102 Y-4 W32 H4\n", out[5].Raw)
	assert.Equal(t, "G1 X122 F1000\n", out[6].Raw)
	assert.Equal(t, "G1 X142 F1000\n", out[7].Raw)
	assert.Equal(t, "G0 X158 Y-4 Z15 F4800\n", out[10].Raw)
	assert.Equal(t, "G0 X143 E4 F500\n", out[12].Raw)
	assert.Equal(t, "G0 X107 E25 F500\n", out[13].Raw)
}

func TestProcessForward(t *testing.T) {
	// With the object starting at X150 the upper end of slot 2's span is
	// nearer, so the purge keeps its original direction.
	text := strings.Replace(startCode, "G1 X120 Y90 F9000", "G1 X150 Y90 F9000", 1)
	lines := parseFixture(t, text)

	out, res, err := Process(lines, Options{Slot: 2})
	require.NoError(t, err)
	assert.False(t, res.Reversed)
	assert.Equal(t, 150.0, res.FirstObjectX)

	assert.Equal(t, "G0 X92 Y-4 Z15 F4800\n", out[10].Raw)
	assert.Equal(t, "G0 X107 E4 F500\n", out[12].Raw)
	assert.Equal(t, "G0 X143 E25 F500\n", out[13].Raw)
}

func TestProcessSlotZeroForwardIsIdentity(t *testing.T) {
	// Slot 0 with the object off to the right: zero offset, no mirror.
	// The toolpath must come back byte-identical.
	lines := parseFixture(t, startCode)
	out, res, err := Process(lines, Options{Slot: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Slot)
	assert.False(t, res.Reversed)
	assert.Equal(t, 0, res.LinesChanged)
	assert.Equal(t, gcode.Text(lines), gcode.Text(out))
}

func TestProcessSlotZeroMirrorOnly(t *testing.T) {
	// Object near the left edge: slot 0 still mirrors the purge direction.
	text := strings.Replace(startCode, "G1 X120 Y90 F9000", "G1 X10 Y90 F9000", 1)
	lines := parseFixture(t, text)

	out, res, err := Process(lines, Options{Slot: 0})
	require.NoError(t, err)
	assert.True(t, res.Reversed)
	assert.Equal(t, "G0 X66 Y-4 Z15 F4800\n", out[10].Raw)
	assert.Equal(t, "G0 X51 E4 F500\n", out[12].Raw)
	assert.Equal(t, "G0 X15 E25 F500\n", out[13].Raw)
}

func TestProcessPreservesNonBlockLines(t *testing.T) {
	lines := parseFixture(t, startCode)
	out, _, err := Process(lines, Options{Slot: 3})
	require.NoError(t, err)
	require.Len(t, out, len(lines))
	for i := range lines {
		if !blockIndices[i] {
			assert.Equal(t, lines[i].Raw, out[i].Raw, "line %d must pass through untouched", i+1)
		}
	}
}

func TestProcessShiftRoundTrip(t *testing.T) {
	// Shifting the blocks by the slot offset and then by its negation must
	// reproduce the original coordinates exactly, including formatting.
	lines := parseFixture(t, startCode)
	b, err := locateBlocks(lines)
	require.NoError(t, err)

	const dx = 138.0 // slot 3
	shifted := applyX(t, lines, b, func(v float64) float64 { return v + dx })
	restored := applyX(t, shifted, b, func(v float64) float64 { return v - dx })
	assert.Equal(t, gcode.Text(lines), gcode.Text(restored))

	// The mirror map is its own inverse.
	mirror := func(v float64) float64 { return mirrorX(dx, 66, v) }
	mirrored := applyX(t, lines, b, mirror)
	assert.Equal(t, gcode.Text(lines), gcode.Text(applyX(t, mirrored, b, mirror)))
}

// applyX rewrites the X word of every block line with fn.
func applyX(t *testing.T, lines []gcode.Line, b *blocks, fn func(float64) float64) []gcode.Line {
	t.Helper()
	out := make([]gcode.Line, len(lines))
	copy(out, lines)
	for _, idx := range [][]int{b.probe, b.clean, b.purge} {
		for _, i := range idx {
			l, _, err := out[i].RewriteWord('X', fn, 0)
			require.NoError(t, err)
			out[i] = l
		}
	}
	return out
}

func TestProcessMaskExcludesSlotZero(t *testing.T) {
	lines := parseFixture(t, startCode)
	mask, err := ParseMask("01111", 5)
	require.NoError(t, err)

	seen := map[int]bool{}
	for seed := int64(0); seed < 100; seed++ {
		out, res, err := Process(lines, Options{
			Mask: mask,
			Slot: SlotRandom,
			Rand: rand.New(rand.NewSource(seed)),
		})
		require.NoError(t, err)
		require.Len(t, out, len(lines))

		assert.NotEqual(t, 0, res.Slot, "seed %d selected the masked-out slot", seed)
		assert.True(t, mask.Allows(res.Slot))
		seen[res.Slot] = true

		// The purge start must land on the selected slot's anchor: the
		// span's upper end when mirrored, its lower end otherwise.
		x, ok, err := out[10].Word('X')
		require.NoError(t, err)
		require.True(t, ok)
		want := res.OffsetX
		if res.Reversed {
			want = res.OffsetX + 66
		}
		assert.Equal(t, want, x, "seed %d", seed)
	}
	// 100 draws over four slots: all of them should appear.
	assert.Len(t, seen, 4)
}

func TestProcessForcedSlotMustBeEligible(t *testing.T) {
	lines := parseFixture(t, startCode)
	mask, err := ParseMask("01111", 5)
	require.NoError(t, err)

	_, _, perr := Process(lines, Options{Mask: mask, Slot: 0})
	require.Error(t, perr)
	assert.True(t, errors.Is(perr, errors.ErrCodeInvalidMask))
}

func TestProcessMaskLengthMismatch(t *testing.T) {
	lines := parseFixture(t, startCode)
	_, _, err := Process(lines, Options{Mask: AllSlots(3), Slot: SlotRandom})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidMask))
}

func TestProcessMissingBlockYieldsNoOutput(t *testing.T) {
	var kept []string
	for _, l := range strings.Split(startCode, "\n") {
		if strings.Contains(l, "G29 P9") {
			continue
		}
		kept = append(kept, l)
	}
	lines := parseFixture(t, strings.Join(kept, "\n"))

	out, _, err := Process(lines, Options{Slot: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeBlockNotFound))
	assert.Nil(t, out)
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	lines := parseFixture(t, startCode)
	before := gcode.Text(lines)
	_, _, err := Process(lines, Options{Slot: 4})
	require.NoError(t, err)
	assert.Equal(t, before, gcode.Text(lines))
}
