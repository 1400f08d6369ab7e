// Package cli implements the purgeshift command-line interface.
//
// purgeshift is meant to be wired into PrusaSlicer's post-processing hook
// (Print Settings > Output options), which invokes the binary with any
// configured arguments followed by the path of the exported G-code file:
//
//	/usr/local/bin/purgeshift 01111;
//
// The root command therefore accepts the slot eligibility mask and the file
// as positional arguments. Everything else (forced slot, fixed seed, custom
// bed profile, dry runs) is available through flags for interactive use.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mk4tools/purgeshift/pkg/buildinfo"
)

// Log levels exported for use in main.go.
const (
	LogWarn  = log.WarnLevel
	LogInfo  = log.InfoLevel
	LogDebug = log.DebugLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself performs the shift, matching the invocation
// contract of the slicer hook.
func (c *CLI) RootCommand() *cobra.Command {
	opts := newShiftOpts()

	root := &cobra.Command{
		Use:   "purgeshift [mask] FILE",
		Short: "Purgeshift relocates the purge line to a random build-plate slot",
		Long: `Purgeshift post-processes PrusaSlicer MK4S G-code so the purge line, the
nozzle cleaning and the purge-area probing land on one of five build-plate
slots instead of always wearing the same spot.

The optional mask is five binary digits selecting which slots are eligible;
for example 01111 excludes slot 0 on a plate whose default purge area is
already worn. Without a mask every slot is eligible.`,
		Version: buildinfo.Version,
		// main prints the error once; cobra must not print it again.
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.RangeArgs(1, 2),
		RunE:          c.shiftRunE(opts),
	}

	root.SetVersionTemplate(buildinfo.Template())
	opts.register(root.Flags())

	root.AddCommand(c.slotsCommand())
	root.AddCommand(c.completionCommand())

	return root
}
