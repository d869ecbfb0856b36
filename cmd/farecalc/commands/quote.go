package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"skycab/internal/modules/fare"
)

func quoteCmd(engine func() *fare.Engine) *cobra.Command {
	var from, to, tier string

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote a trip between two points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pickup, err := parsePoint(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			dest, err := parsePoint(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			out := cmd.OutOrStdout()
			q, err := engine().Quote(pickup, dest, tier)
			if errors.Is(err, fare.ErrOutsideRegion) {
				// Still show the figures; the trip just cannot be booked.
				d := engine().DistanceKm(pickup, dest)
				fmt.Fprintf(out, "distance %.2f km\nfare ₹%.2f (%s)\nnot bookable: %v\n", d, engine().QuoteFare(d, tier), tier, err)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "distance %.2f km\nfare ₹%.2f (%s)\n", q.DistanceKm, q.TotalFare, q.TierID)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "pickup as lat,lng")
	cmd.Flags().StringVar(&to, "to", "", "destination as lat,lng")
	cmd.Flags().StringVar(&tier, "tier", "economy", "service tier id")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
