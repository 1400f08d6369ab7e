package purge

import (
	"math/rand"
	"time"

	"github.com/mk4tools/purgeshift/pkg/errors"
	"github.com/mk4tools/purgeshift/pkg/gcode"
	"github.com/mk4tools/purgeshift/pkg/profile"
)

// SlotRandom selects the slot randomly from the mask's eligible slots.
const SlotRandom = -1

// Options configures one shift run.
type Options struct {
	// Profile is the bed geometry. Nil selects the built-in MK4S profile.
	Profile *profile.Profile

	// Mask holds per-slot eligibility bits. Nil makes every slot eligible.
	Mask Mask

	// Slot forces a specific slot when >= 0; it must be eligible under the
	// mask. [SlotRandom] selects randomly. Note the zero value forces slot
	// 0; callers wanting random selection must say so.
	Slot int

	// Rand is the random source for slot selection. Nil falls back to a
	// time-seeded source; tests inject a fixed seed for determinism.
	Rand *rand.Rand
}

// Result describes what a shift run did.
type Result struct {
	Slot         int     // selected slot index
	OffsetX      float64 // applied X translation
	OffsetY      float64 // applied Y translation
	Reversed     bool    // purge direction was mirrored
	FirstObjectX float64 // start X of the first printed object
	LinesChanged int     // lines that differ from the input
}

// Process rewrites the purge-related blocks of a toolpath onto a randomly
// selected plate slot and returns the new lines. The input slice is not
// modified. On any error the caller gets no output lines; a run either fully
// succeeds or changes nothing.
func Process(lines []gcode.Line, opts Options) ([]gcode.Line, Result, error) {
	prof := opts.Profile
	if prof == nil {
		prof = profile.MK4S()
	}
	if err := prof.Validate(); err != nil {
		return nil, Result{}, err
	}

	mask := opts.Mask
	if mask == nil {
		mask = AllSlots(prof.SlotCount)
	}
	if len(mask) != prof.SlotCount {
		return nil, Result{}, errors.New(errors.ErrCodeInvalidMask,
			"mask has %d digits but profile %q has %d slots", len(mask), prof.Name, prof.SlotCount)
	}

	slot, err := pickSlot(mask, opts)
	if err != nil {
		return nil, Result{}, err
	}

	b, err := locateBlocks(lines)
	if err != nil {
		return nil, Result{}, err
	}

	dx, dy := prof.SlotOffset(slot)
	reversed := reversePurge(dx, prof.PurgeSpan, b.firstObjectX)

	out := make([]gcode.Line, len(lines))
	copy(out, lines)

	shiftX := func(v float64) float64 { return v + dx }
	purgeX := shiftX
	if reversed {
		purgeX = func(v float64) float64 { return mirrorX(dx, prof.PurgeSpan, v) }
	}

	precX := gcode.Decimals(dx)
	precY := gcode.Decimals(dy)
	rewrite := func(idx []int, fn func(float64) float64) error {
		for _, i := range idx {
			l, _, err := out[i].RewriteWord('X', fn, precX)
			if err != nil {
				return err
			}
			if dy != 0 {
				l, _, err = l.RewriteWord('Y', func(v float64) float64 { return v + dy }, precY)
				if err != nil {
					return err
				}
			}
			out[i] = l
		}
		return nil
	}

	if err := rewrite(b.probe, shiftX); err != nil {
		return nil, Result{}, err
	}
	if err := rewrite(b.clean, shiftX); err != nil {
		return nil, Result{}, err
	}
	if err := rewrite(b.purge, purgeX); err != nil {
		return nil, Result{}, err
	}

	res := Result{
		Slot:         slot,
		OffsetX:      dx,
		OffsetY:      dy,
		Reversed:     reversed,
		FirstObjectX: b.firstObjectX,
	}
	for i := range out {
		if out[i].Raw != lines[i].Raw {
			res.LinesChanged++
		}
	}
	return out, res, nil
}

// pickSlot resolves the slot for this run: forced via Options.Slot, or drawn
// uniformly from the mask's eligible slots.
func pickSlot(mask Mask, opts Options) (int, error) {
	if opts.Slot >= 0 {
		if !mask.Allows(opts.Slot) {
			return 0, errors.New(errors.ErrCodeInvalidMask,
				"slot %d is not eligible under mask %s", opts.Slot, mask)
		}
		return opts.Slot, nil
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return mask.Select(rng)
}
