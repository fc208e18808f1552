package forecast

import (
	"fmt"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"200601021504",
}

// ParseTime reads a request time. Layouts without a zone are taken as KST.
// An empty string yields the zero time, which callers treat as "now".
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, KST); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q, want RFC3339, \"2006-01-02 15:04\" or \"200601021504\"", s)
}
