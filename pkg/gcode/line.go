package gcode

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mk4tools/purgeshift/pkg/errors"
)

// Line is one raw line of a G-code stream. Raw keeps the original bytes
// including the line terminator; Num is the 1-based position in the stream.
type Line struct {
	Num int
	Raw string
}

// wordPatterns matches a coordinate word per axis letter. The number part is
// deliberately loose ([-0-9.]+) so that malformed tokens like "X1.2.3" are
// caught by strconv and surface as a parse error instead of being skipped.
var wordPatterns = map[byte]*regexp.Regexp{
	'X': regexp.MustCompile(`(?i)\bX(-?[0-9.]+)`),
	'Y': regexp.MustCompile(`(?i)\bY(-?[0-9.]+)`),
	'W': regexp.MustCompile(`(?i)\bW(-?[0-9.]+)`),
	'E': regexp.MustCompile(`(?i)\bE(-?[0-9.]+)`),
}

// Command returns the canonical command word of the line ("G0", "G1", "G29",
// "M104", ...), or "" for blank lines and comments. Zero-padded motion
// commands (G00, G01) normalize to their short form.
func (l Line) Command() string {
	s := strings.TrimSpace(l.Raw)
	if s == "" || strings.HasPrefix(s, ";") {
		return ""
	}
	if i := strings.IndexAny(s, " \t;"); i >= 0 {
		s = s[:i]
	}
	s = strings.ToUpper(s)
	switch s {
	case "G00":
		return "G0"
	case "G01":
		return "G1"
	}
	return s
}

// Word extracts the numeric value of the first coordinate word with the given
// axis letter. ok is false when the line carries no such word. A word that is
// present but not numeric yields a PARSE_ERROR.
func (l Line) Word(letter byte) (val float64, ok bool, err error) {
	re := wordPatterns[letter]
	if re == nil {
		return 0, false, nil
	}
	m := re.FindStringSubmatch(l.Raw)
	if m == nil {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false, errors.New(errors.ErrCodeParse,
			"line %d: %c coordinate %q is not numeric", l.Num, letter, m[1])
	}
	return v, true, nil
}

// HasWord reports whether the line carries a coordinate word with the given
// axis letter, numeric or not.
func (l Line) HasWord(letter byte) bool {
	re := wordPatterns[letter]
	return re != nil && re.MatchString(l.Raw)
}

// RewriteWord applies fn to the first coordinate word with the given axis
// letter and returns the rewritten line. The value is re-emitted with the
// source token's decimal precision, widened to minPrec when the mapping
// itself introduces finer digits (a fractional offset applied to an integer
// coordinate). Lines without the word are returned unchanged with ok=false.
func (l Line) RewriteWord(letter byte, fn func(float64) float64, minPrec int) (out Line, ok bool, err error) {
	re := wordPatterns[letter]
	if re == nil {
		return l, false, nil
	}
	loc := re.FindStringSubmatchIndex(l.Raw)
	if loc == nil {
		return l, false, nil
	}
	tok := l.Raw[loc[2]:loc[3]]
	v, perr := strconv.ParseFloat(tok, 64)
	if perr != nil {
		return l, false, errors.New(errors.ErrCodeParse,
			"line %d: %c coordinate %q is not numeric", l.Num, letter, tok)
	}
	prec := decimalsOf(tok)
	if minPrec > prec {
		prec = minPrec
	}
	out = Line{
		Num: l.Num,
		Raw: l.Raw[:loc[2]] + formatCoord(fn(v), prec) + l.Raw[loc[3]:],
	}
	return out, true, nil
}

// decimalsOf counts the digits after the decimal point in a numeric token.
func decimalsOf(tok string) int {
	if i := strings.IndexByte(tok, '.'); i >= 0 {
		return len(tok) - i - 1
	}
	return 0
}

// Decimals returns the number of decimal digits needed to represent v
// exactly, capped at 3 (the finest resolution slicers emit for XY moves).
func Decimals(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	d := decimalsOf(s)
	if d > 3 {
		d = 3
	}
	return d
}

// formatCoord renders a coordinate value with a fixed number of decimals.
func formatCoord(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
