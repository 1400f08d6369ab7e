// Package profile defines the bed geometry that drives a purge shift.
//
// A profile captures everything printer-specific: how many purge slots the
// plate offers, how far apart they sit, and how much X range the purge
// routine sweeps including its off-bed lead-in. The built-in default matches
// the Prusa MK4S start code; other printers can supply a TOML file.
package profile

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mk4tools/purgeshift/pkg/errors"
)

// Profile describes the purge-slot geometry of one printer/bed combination.
type Profile struct {
	// Name is a display name for the printer or plate variant.
	Name string `toml:"name"`

	// SlotCount is the number of wear-distribution slots on the plate.
	SlotCount int `toml:"slot_count"`

	// SlotPitchX and SlotPitchY are the anchor spacing between adjacent
	// slots. The unmodified toolpath corresponds to slot 0; the shift for
	// slot i is i times the pitch.
	SlotPitchX float64 `toml:"slot_pitch_x"`
	SlotPitchY float64 `toml:"slot_pitch_y"`

	// PurgeSpan is the full X range the purge routine occupies relative to
	// its slot anchor, including the off-bed lead-in. Mirroring the purge
	// direction reflects coordinates inside [anchor, anchor+PurgeSpan].
	PurgeSpan float64 `toml:"purge_span"`
}

// MK4S is the built-in profile for the Prusa MK4S start code: five slots
// spaced 46 mm apart, purge sweeping 66 mm (51 mm of travel plus a 15 mm
// off-bed lead-in), all at a fixed Y in front of the bed.
func MK4S() *Profile {
	return &Profile{
		Name:       "Prusa MK4S",
		SlotCount:  5,
		SlotPitchX: 46,
		SlotPitchY: 0,
		PurgeSpan:  66,
	}
}

// Load reads a profile from a TOML file and validates it.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read profile %s", path)
	}
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "parse profile %s", path)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the profile for usable geometry.
func (p *Profile) Validate() error {
	switch {
	case p.SlotCount < 2:
		return errors.New(errors.ErrCodeInvalidProfile,
			"profile needs at least 2 slots, got %d", p.SlotCount)
	case p.SlotPitchX == 0 && p.SlotPitchY == 0:
		return errors.New(errors.ErrCodeInvalidProfile,
			"profile slot pitch must be non-zero")
	case p.PurgeSpan <= 0:
		return errors.New(errors.ErrCodeInvalidProfile,
			"profile purge span must be positive, got %g", p.PurgeSpan)
	}
	return nil
}

// SlotOffset returns the (dx, dy) translation from slot 0 to slot i.
func (p *Profile) SlotOffset(i int) (dx, dy float64) {
	return float64(i) * p.SlotPitchX, float64(i) * p.SlotPitchY
}
