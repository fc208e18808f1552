package forecast

import (
	"fmt"
	"time"
)

const stampLayout = "20060102 1504"

// formatStamp turns a provider date ("20240426") and time ("1500") into DisplayLayout.
func formatStamp(date, hhmm string) (string, error) {
	t, err := time.Parse(stampLayout, date+" "+hhmm)
	if err != nil {
		return "", fmt.Errorf("%w: timestamp %q %q: %v", ErrMalformedEnvelope, date, hhmm, err)
	}
	return t.Format(DisplayLayout), nil
}

// GroupByForecastTime classifies records into one bucket per
// (fcstDate, fcstTime), keeping buckets in first-seen order.
func GroupByForecastTime(records []RawRecord) ([]ForecastBucket, error) {
	buckets := make([]ForecastBucket, 0)
	index := make(map[string]int)

	for _, r := range records {
		date, err := formatStamp(r.FcstDate, r.FcstTime)
		if err != nil {
			return nil, err
		}

		i, ok := index[date]
		if !ok {
			i = len(buckets)
			index[date] = i
			buckets = append(buckets, ForecastBucket{Date: date})
		}
		buckets[i].Items = append(buckets[i].Items, Classify(r))
	}

	return buckets, nil
}
