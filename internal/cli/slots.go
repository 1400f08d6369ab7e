package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mk4tools/purgeshift/pkg/purge"
)

// slotsCommand creates the slots command, which lists the purge slots of the
// active bed profile with their X ranges and eligibility under a mask.
func (c *CLI) slotsCommand() *cobra.Command {
	var (
		maskStr     string
		profilePath string
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List the purge slots of the active bed profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prof, err := loadProfile(profilePath)
			if err != nil {
				return err
			}

			mask := purge.AllSlots(prof.SlotCount)
			if maskStr != "" {
				if mask, err = purge.ParseMask(maskStr, prof.SlotCount); err != nil {
					return err
				}
			}

			fmt.Println(StyleTitle.Render(prof.Name) + " " +
				StyleDim.Render(fmt.Sprintf("(%d slots, purge span %.0f mm)", prof.SlotCount, prof.PurgeSpan)))
			for i := 0; i < prof.SlotCount; i++ {
				dx, dy := prof.SlotOffset(i)
				pos := fmt.Sprintf("X %6.1f .. %6.1f", dx, dx+prof.PurgeSpan)
				if dy != 0 {
					pos += fmt.Sprintf("  Y %+.1f", dy)
				}
				state := StyleSuccess.Render("eligible")
				if !mask.Allows(i) {
					state = StyleWarning.Render("masked")
				}
				fmt.Println("  " + StyleNumber.Render(fmt.Sprintf("slot %d", i)) +
					"  " + StyleValue.Render(pos) + "  " + state)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&maskStr, "mask", "m", "", "slot eligibility mask, e.g. 01111")
	cmd.Flags().StringVar(&profilePath, "profile", "", "TOML bed profile (default: built-in Prusa MK4S)")

	return cmd
}
