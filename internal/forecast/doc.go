// Package forecast is a client for the KMA village forecast service
// (VilageFcstInfoService on apis.data.go.kr).
//
// Basic usage:
//
//	cfg := config.NewDefaultConfig().Forecast
//	cfg.APIKey = os.Getenv("KMA_FORECAST_API_KEY")
//	client := forecast.NewClientWithConfig(cfg, logger, telemetry.NewDisabled())
//
//	obs, err := client.FetchObservation(ctx, forecast.Request{Lat: 37.5665, Lng: 126.978})
//	if err != nil {
//		var perr *forecast.ProviderError
//		if errors.As(err, &perr) {
//			log.Printf("provider said %s: %s", perr.Code, perr.Message)
//		}
//		return err
//	}
//
// Operations:
//
// - FetchObservation: ultra-short-term observation, flat item list
// - FetchForecastShortTerm: ultra-short-term forecast, grouped by forecast time
// - FetchForecastVillage: village forecast, grouped by forecast time
// - FetchVersion: publication version of one product
//
// The service key is the decoded form shown on the data.go.kr portal; it is
// URL-encoded when the request is built. Each call performs exactly one
// request and is never retried.
package forecast
