package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"skycab/internal/modules/fare"
)

func containsCmd(engine func() *fare.Engine) *cobra.Command {
	return &cobra.Command{
		Use:   "contains lat,lng",
		Short: "Report whether a point is inside the service region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePoint(args[0])
			if err != nil {
				return err
			}
			r := engine().Region()
			fmt.Fprintf(cmd.OutOrStdout(), "%s in %s: %t\n", p, r.Name, engine().IsWithinServiceRegion(p))
			return nil
		},
	}
}
