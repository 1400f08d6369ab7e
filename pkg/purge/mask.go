package purge

import (
	"math/rand"
	"strings"

	"github.com/mk4tools/purgeshift/pkg/errors"
)

// Mask holds one eligibility bit per plate slot. A set bit means the slot may
// be chosen for this run.
type Mask []bool

// AllSlots returns a mask with every one of n slots eligible.
func AllSlots(n int) Mask {
	m := make(Mask, n)
	for i := range m {
		m[i] = true
	}
	return m
}

// ParseMask parses a '0'/'1' string into a mask of exactly n slots.
// The string must be n binary digits with at least one '1'; anything else is
// an INVALID_MASK error. The slicer passes this string verbatim from the
// post-processing hook configuration, so the message spells out the rule.
func ParseMask(s string, n int) (Mask, error) {
	if len(s) != n || strings.Trim(s, "01") != "" {
		return nil, errors.New(errors.ErrCodeInvalidMask,
			"mask must be %d binary digits (e.g. %s), got %q", n, strings.Repeat("1", n), s)
	}
	m := make(Mask, n)
	any := false
	for i := range s {
		if s[i] == '1' {
			m[i] = true
			any = true
		}
	}
	if !any {
		return nil, errors.New(errors.ErrCodeInvalidMask,
			"mask %q excludes every slot; at least one digit must be 1", s)
	}
	return m, nil
}

// String renders the mask back as a '0'/'1' string.
func (m Mask) String() string {
	var b strings.Builder
	for _, set := range m {
		if set {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Allows reports whether slot i is eligible. Out-of-range slots are not.
func (m Mask) Allows(i int) bool {
	return i >= 0 && i < len(m) && m[i]
}

// Eligible returns the indices of all eligible slots, in order.
func (m Mask) Eligible() []int {
	var slots []int
	for i, set := range m {
		if set {
			slots = append(slots, i)
		}
	}
	return slots
}

// Select picks one eligible slot uniformly at random. With a single eligible
// slot the choice is deterministic and rng is not consulted.
func (m Mask) Select(rng *rand.Rand) (int, error) {
	slots := m.Eligible()
	switch len(slots) {
	case 0:
		return 0, errors.New(errors.ErrCodeInvalidMask,
			"mask %q excludes every slot; at least one digit must be 1", m)
	case 1:
		return slots[0], nil
	}
	return slots[rng.Intn(len(slots))], nil
}
