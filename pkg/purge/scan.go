package purge

import (
	"github.com/mk4tools/purgeshift/pkg/errors"
	"github.com/mk4tools/purgeshift/pkg/gcode"
)

// lineClass categorizes one line for the block scanner.
type lineClass int

const (
	classOther      lineClass = iota
	classProbe                // pre-purge G29 probe window over the purge area
	classCleanMove            // pre-purge G1 wipe move in front of the bed edge
	classPurgeStart           // the G0 that dips to negative Y and opens the purge
	classPurgeMove            // G0 inside the purge-line block
	classObjectMove           // G1 back to positive Y: travel toward the first object
)

// scanState is the scanner position within the start code.
type scanState int

const (
	stateIntro      scanState = iota // probing and nozzle cleaning before the purge
	statePurge                       // inside the purge-line block
	stateSeekObject                  // past the purge, looking for the object's start X
	stateDone
)

// blocks is the scanner result: 0-based indices of the rewrite targets in
// each purge region, plus the first object's start X. Indexed lines all carry
// an X word; lines inside a region without one need no rewriting.
type blocks struct {
	probe        []int
	clean        []int
	purge        []int
	firstObjectX float64
}

// classify assigns a class to one line given the scanner state and the modal
// Y position carried over from earlier moves. It returns the updated modal Y.
// The cleaning wipes rely on modal Y: after "G1 X42 Y-4" the slicer emits
// further wipes as bare "G1 X.." lines that inherit the negative Y.
func classify(l gcode.Line, st scanState, modalY float64) (lineClass, float64, error) {
	cmd := l.Command()
	if cmd != "G0" && cmd != "G1" && cmd != "G29" {
		return classOther, modalY, nil
	}

	y, hasY, err := l.Word('Y')
	if err != nil {
		return classOther, modalY, err
	}
	if hasY {
		modalY = y
	}

	switch st {
	case stateIntro:
		switch cmd {
		case "G29":
			if l.HasWord('X') {
				return classProbe, modalY, nil
			}
		case "G0":
			if hasY && y < 0 {
				return classPurgeStart, modalY, nil
			}
		case "G1":
			if l.HasWord('X') && modalY < 0 {
				return classCleanMove, modalY, nil
			}
		}
	case statePurge:
		switch cmd {
		case "G0":
			return classPurgeMove, modalY, nil
		case "G1":
			if hasY && y > 0 {
				return classObjectMove, modalY, nil
			}
		}
	case stateSeekObject:
		if cmd == "G1" && hasY && y > 0 && l.HasWord('X') {
			return classObjectMove, modalY, nil
		}
	}
	return classOther, modalY, nil
}

// locateBlocks runs the scanner over the whole stream and validates that all
// three purge regions and the first object move are present. A missing region
// means the start code does not match the supported slicer profile, which is
// fatal: shifting half the purge geometry would be worse than doing nothing.
func locateBlocks(lines []gcode.Line) (*blocks, error) {
	var b blocks
	st := stateIntro
	modalY := 0.0

	for i, l := range lines {
		if st == stateDone {
			break
		}

		class, newModalY, err := classify(l, st, modalY)
		if err != nil {
			return nil, err
		}
		modalY = newModalY

		switch class {
		case classProbe:
			b.probe = append(b.probe, i)
		case classCleanMove:
			b.clean = append(b.clean, i)
		case classPurgeStart:
			st = statePurge
			if l.HasWord('X') {
				b.purge = append(b.purge, i)
			}
		case classPurgeMove:
			if l.HasWord('X') {
				b.purge = append(b.purge, i)
			}
		case classObjectMove:
			x, hasX, err := l.Word('X')
			if err != nil {
				return nil, err
			}
			if !hasX {
				// Purge is over but this travel carries no X; keep
				// looking for the object's first X-bearing move.
				st = stateSeekObject
				continue
			}
			b.firstObjectX = x
			st = stateDone
		}
	}

	switch {
	case len(b.probe) == 0:
		return nil, errors.New(errors.ErrCodeBlockNotFound,
			"purge-line probing block not found; the start G-code does not match the supported slicer profile")
	case len(b.clean) == 0:
		return nil, errors.New(errors.ErrCodeBlockNotFound,
			"nozzle cleaning block not found; the start G-code does not match the supported slicer profile")
	case len(b.purge) == 0:
		return nil, errors.New(errors.ErrCodeBlockNotFound,
			"purge line block not found; the start G-code does not match the supported slicer profile")
	case st != stateDone:
		return nil, errors.New(errors.ErrCodeBlockNotFound,
			"first object move not found after the purge line; the start G-code does not match the supported slicer profile")
	}
	return &b, nil
}
