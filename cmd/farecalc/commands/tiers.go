package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"skycab/internal/modules/fare"
)

func tiersCmd(engine func() *fare.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "List service tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, t := range engine().Tiers() {
				fmt.Fprintf(out, "%-8s %-8s ₹%.0f/km  %d seats  %s\n", t.ID, t.Name, t.PricePerKm, t.Capacity, t.Speed)
			}
			fmt.Fprintf(out, "minimum fare ₹%.0f\n", engine().MinimumFare())
			return nil
		},
	}
}
