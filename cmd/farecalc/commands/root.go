package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"skycab/internal/config"
	"skycab/internal/modules/fare"
	"skycab/internal/modules/geo"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var (
		envFile string
		engine  *fare.Engine
	)

	root := &cobra.Command{
		Use:          "farecalc",
		Short:        "Price flying-taxi trips from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			engine = fare.NewEngine(fare.DefaultCatalog(), cfg.Fare.Region, fare.WithMinimumFare(cfg.Fare.MinimumFare))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env", "", "optional dotenv file")

	getEngine := func() *fare.Engine { return engine }
	root.AddCommand(tiersCmd(getEngine), quoteCmd(getEngine), containsCmd(getEngine))
	return root
}

// parsePoint reads "lat,lng".
func parsePoint(s string) (geo.Point, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return geo.Point{}, fmt.Errorf("expected lat,lng, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("bad latitude %q: %w", latStr, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("bad longitude %q: %w", lngStr, err)
	}
	p := geo.Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		return geo.Point{}, fmt.Errorf("coordinate out of range: %s", s)
	}
	return p, nil
}
