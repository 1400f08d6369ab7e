// Package gcode provides a minimal line-oriented model of a G-code stream.
//
// # Overview
//
// purgeshift never interprets a toolpath as geometry; it rewrites individual
// coordinate words on individual lines and passes everything else through
// untouched. The model reflects that:
//
//   - A [Line] is one raw line of the stream with its terminator preserved,
//     so unmodified lines round-trip byte-for-byte.
//   - [Line.Word] extracts a single coordinate word (X, Y, W, ...) from a
//     motion or utility command.
//   - [Line.RewriteWord] applies a numeric mapping to one word, re-emitting
//     the value with the source token's decimal precision.
//
// # File Handling
//
// [ReadLines] reads a whole file into lines; [WriteLinesAtomic] writes the
// result through a temp file plus rename in the target directory, so a failed
// run can never leave a truncated or half-rewritten toolpath behind. This is
// the contract a slicer post-processing hook depends on: the file is either
// fully rewritten or untouched.
//
// # Dialect
//
// The command vocabulary (G0/G1 motion, G29 probing, the purge structure of
// the start-up code) is an external contract with the upstream slicer. This
// package recognizes only what the shifter needs and deliberately nothing
// more; G-code dialect completeness is a non-goal.
package gcode
