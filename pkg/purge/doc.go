// Package purge implements the coordinate shifter that relocates the purge
// routine of a sliced toolpath to a randomly chosen plate slot.
//
// # Overview
//
// A PrusaSlicer MK4S toolpath always purges at the same spot, wearing one
// patch of the build plate. This package rewrites the three purge-related
// regions of the start code (purge-line probing, nozzle cleaning and the
// purge line itself) so they land on one of several predefined slots
// instead, and flips the purge direction when that keeps the travel move to
// the first printed object from crossing the freshly laid purge line.
//
// # Pipeline
//
// [Process] runs the whole transformation on an in-memory line slice:
//
//  1. Validate the slot eligibility [Mask].
//  2. Select a slot (uniform among eligible slots, from an injectable
//     random source).
//  3. Locate the three blocks with an explicit scanner state machine; any
//     missing block is a fatal BLOCK_NOT_FOUND (unsupported start-code
//     variant).
//  4. Compute the (dx, dy) offset from slot 0 to the selected slot.
//  5. Decide the purge direction against the first object's start X.
//  6. Rewrite coordinate words inside the blocks; every other line passes
//     through byte-for-byte.
//
// Output line count always equals input line count, and a failed run
// produces no output at all.
package purge
