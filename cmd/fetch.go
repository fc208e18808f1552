package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kimjbstar/korea-public-village-forecast/internal/config"
	"github.com/kimjbstar/korea-public-village-forecast/internal/forecast"
)

type locationFlags struct {
	lat  float64
	lng  float64
	time string
	rows int
	page int
}

func (f *locationFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "latitude in degrees")
	cmd.Flags().Float64Var(&f.lng, "lng", 0, "longitude in degrees")
	cmd.Flags().StringVar(&f.time, "time", "", "release time in KST, e.g. \"2024-04-26 14:00\" (default: now)")
	cmd.Flags().IntVar(&f.rows, "rows", forecast.DefaultNumOfRows, "rows per page")
	cmd.Flags().IntVar(&f.page, "page", forecast.DefaultPageNo, "page number")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
}

func (f *locationFlags) request() (forecast.Request, error) {
	at, err := forecast.ParseTime(f.time)
	if err != nil {
		return forecast.Request{}, err
	}
	return forecast.Request{
		Lat:       f.lat,
		Lng:       f.lng,
		Time:      at,
		NumOfRows: f.rows,
		PageNo:    f.page,
	}, nil
}

func newClient() *forecast.Client {
	return forecast.NewClientWithConfig(config.GetConfig().Forecast, log.Logger, tele)
}

func observationCmd() *cobra.Command {
	var flags locationFlags
	cmd := &cobra.Command{
		Use:   "observation",
		Short: "Fetch the ultra-short-term observation for a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			res, err := newClient().FetchObservation(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	flags.register(cmd)
	return cmd
}

func forecastCmd() *cobra.Command {
	var (
		flags locationFlags
		kind  string
	)
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Fetch the ultra-short-term or village forecast for a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}

			client := newClient()
			var res *forecast.ForecastResult
			switch kind {
			case "ultra":
				res, err = client.FetchForecastShortTerm(cmd.Context(), req)
			case "village":
				res, err = client.FetchForecastVillage(cmd.Context(), req)
			default:
				return fmt.Errorf("unknown forecast kind %q (want ultra or village)", kind)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&kind, "kind", "ultra", "forecast kind: ultra or village")
	return cmd
}

func versionCmd() *cobra.Command {
	var fileType, at string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Fetch the publication version of a forecast product",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := forecast.ParseTime(at)
			if err != nil {
				return err
			}
			res, err := newClient().FetchVersion(cmd.Context(), forecast.VersionRequest{
				Type: forecast.FileType(fileType),
				Time: t,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&fileType, "type", "", "product: ODAM, VSRT or SHRT")
	cmd.Flags().StringVar(&at, "time", "", "release time in KST (default: now)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
