package forecast

import (
	"time"
)

// Minutes past the hour after which each hourly release is published.
const (
	ObservationThreshold = 40
	ShortTermThreshold   = 45
	NoThreshold          = 0
)

// KST is the provider's time zone. Asia/Seoul has no DST, so the fixed
// zone is used when the tz database is unavailable.
var KST = loadKST()

func loadKST() *time.Location {
	if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
		return loc
	}
	return time.FixedZone("KST", 9*60*60)
}

// ResolveBaseTime returns the release to request for requested. When now is
// in the same hour as requested and requested is earlier than threshold
// minutes past the hour, that hour is not yet published and the previous
// hour is used. A threshold of NoThreshold returns requested unchanged.
func ResolveBaseTime(now, requested time.Time, threshold int) time.Time {
	if threshold <= NoThreshold {
		return requested
	}

	if sameHour(now.In(KST), requested.In(KST)) && requested.In(KST).Minute() < threshold {
		return requested.Add(-time.Hour)
	}
	return requested
}

func sameHour(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd && a.Hour() == b.Hour()
}
