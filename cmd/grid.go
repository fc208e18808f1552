package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/kimjbstar/korea-public-village-forecast/internal/config"
)

func gridCmd() *cobra.Command {
	var (
		lat, lng float64
		nx, ny   int
	)
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Convert between lat/lng and forecast grid cells",
		Long: `With --lat and --lng, print the grid cell containing the point.
With --nx and --ny, print the lat/lng of the cell.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			projection := config.GetConfig().Forecast.Projection
			flags := cmd.Flags()

			switch {
			case flags.Changed("lat") && flags.Changed("lng"):
				return printJSON(cmd.OutOrStdout(), projection.ToGrid(lat, lng))
			case flags.Changed("nx") && flags.Changed("ny"):
				return printJSON(cmd.OutOrStdout(), projection.ToLatLng(nx, ny))
			default:
				return errors.New("either --lat and --lng or --nx and --ny are required")
			}
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude in degrees")
	cmd.Flags().IntVar(&nx, "nx", 0, "grid column")
	cmd.Flags().IntVar(&ny, "ny", 0, "grid row")
	cmd.MarkFlagsMutuallyExclusive("lat", "nx")
	cmd.MarkFlagsMutuallyExclusive("lng", "ny")
	return cmd
}
