package cli

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mk4tools/purgeshift/pkg/errors"
	"github.com/mk4tools/purgeshift/pkg/gcode"
	"github.com/mk4tools/purgeshift/pkg/profile"
	"github.com/mk4tools/purgeshift/pkg/purge"
)

// shiftOpts holds the command-line flags for the root shift operation.
type shiftOpts struct {
	mask        string // eligibility mask, alternative to the positional argument
	slot        int    // forced slot, SlotRandom selects randomly
	seed        int64  // fixed random seed, 0 seeds from the clock
	profilePath string // TOML bed profile path, empty selects the built-in MK4S
	dryRun      bool   // report the shift without writing
	toStdout    bool   // write the result to stdout instead of in place
}

func newShiftOpts() *shiftOpts {
	return &shiftOpts{slot: purge.SlotRandom}
}

// register binds the shift flags to a flag set.
func (o *shiftOpts) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.mask, "mask", "m", "", "slot eligibility mask, e.g. 01111")
	fs.IntVar(&o.slot, "slot", purge.SlotRandom, "force a specific slot instead of selecting randomly")
	fs.Int64Var(&o.seed, "seed", 0, "random seed for slot selection (0 seeds from the clock)")
	fs.StringVar(&o.profilePath, "profile", "", "TOML bed profile (default: built-in Prusa MK4S)")
	fs.BoolVarP(&o.dryRun, "dry-run", "n", false, "report the shift without writing anything")
	fs.BoolVar(&o.toStdout, "stdout", false, "write the result to stdout instead of in place")
}

// resolveArgs reconciles the positional arguments with the --mask flag.
// The slicer hook passes [mask] FILE with the file always last; interactive
// users may prefer the flag. Conflicting masks are rejected rather than
// silently preferring one source.
func resolveArgs(args []string, flagMask string) (mask, file string, err error) {
	switch len(args) {
	case 1:
		return flagMask, args[0], nil
	case 2:
		if flagMask != "" && flagMask != args[0] {
			return "", "", errors.New(errors.ErrCodeInvalidInput,
				"mask given twice: %q as argument and %q via --mask", args[0], flagMask)
		}
		return args[0], args[1], nil
	}
	return "", "", errors.New(errors.ErrCodeInvalidInput, "expected [mask] FILE, got %d arguments", len(args))
}

// shiftRunE builds the RunE for the root command: read the file, shift the
// purge blocks, write the result back. Success is silent at the default log
// level; the slicer treats any output as noise.
func (c *CLI) shiftRunE(opts *shiftOpts) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		maskStr, path, err := resolveArgs(args, opts.mask)
		if err != nil {
			return err
		}

		prof, err := loadProfile(opts.profilePath)
		if err != nil {
			return err
		}

		mask := purge.AllSlots(prof.SlotCount)
		if maskStr != "" {
			if mask, err = purge.ParseMask(maskStr, prof.SlotCount); err != nil {
				return err
			}
		}

		var rng *rand.Rand
		if opts.seed != 0 {
			rng = rand.New(rand.NewSource(opts.seed))
		}

		lines, err := gcode.ReadLines(path)
		if err != nil {
			return err
		}

		prog := newProgress(c.Logger)
		out, res, err := purge.Process(lines, purge.Options{
			Profile: prof,
			Mask:    mask,
			Slot:    opts.slot,
			Rand:    rng,
		})
		if err != nil {
			return err
		}

		direction := "forward"
		if res.Reversed {
			direction = "reversed"
		}
		c.Logger.Debugf("first object starts at X%g, purge direction %s", res.FirstObjectX, direction)
		prog.done("Shifted purge to slot %d of %d (X%+g Y%+g, %d lines)",
			res.Slot, prof.SlotCount, res.OffsetX, res.OffsetY, res.LinesChanged)

		switch {
		case opts.dryRun:
			printReport(prof, res)
			return nil
		case opts.toStdout:
			_, err := fmt.Fprint(cmd.OutOrStdout(), gcode.Text(out))
			return err
		}
		return gcode.WriteLinesAtomic(path, out)
	}
}

// loadProfile returns the bed profile for this run.
func loadProfile(path string) (*profile.Profile, error) {
	if path == "" {
		return profile.MK4S(), nil
	}
	return profile.Load(path)
}

// printReport prints the dry-run summary of what a real run would change.
func printReport(prof *profile.Profile, res purge.Result) {
	direction := "forward"
	if res.Reversed {
		direction = "reversed"
	}
	printKeyValue("Profile", prof.Name)
	printKeyValue("Slot", fmt.Sprintf("%d of %d", res.Slot, prof.SlotCount))
	printKeyValue("Offset", fmt.Sprintf("X%+.1f Y%+.1f", res.OffsetX, res.OffsetY))
	printKeyValue("Direction", direction)
	printKeyValue("First object", fmt.Sprintf("X%.1f", res.FirstObjectX))
	printKeyValue("Lines", fmt.Sprintf("%d changed", res.LinesChanged))
	printDetail("dry run: nothing written")
}
