package datetime

import (
	"fmt"
	"time"
)

// Formatted holds the four human-readable renderings of a single instant.
type Formatted struct {
	DateTime string `json:"dateTime"` // Mar 15, 2026, 2:30 PM
	DateDay  string `json:"dateDay"`  // Sun, 03/15/2026
	DateOnly string `json:"dateOnly"` // Mar 15, 2026
	TimeOnly string `json:"timeOnly"` // 2:30 PM
}

const (
	layoutDateTime = "Jan 2, 2006, 3:04 PM"
	layoutDateDay  = "Mon, 01/02/2006"
	layoutDateOnly = "Jan 2, 2006"
	layoutTimeOnly = "3:04 PM"
)

// Format renders t in the given IANA time zone, or UTC when timeZone is
// empty. The only failure mode is an unknown zone name.
func Format(t time.Time, timeZone string) (Formatted, error) {
	loc := time.UTC
	if timeZone != "" {
		l, err := time.LoadLocation(timeZone)
		if err != nil {
			return Formatted{}, fmt.Errorf("unknown time zone %q: %w", timeZone, err)
		}
		loc = l
	}

	local := t.In(loc)
	return Formatted{
		DateTime: local.Format(layoutDateTime),
		DateDay:  local.Format(layoutDateDay),
		DateOnly: local.Format(layoutDateOnly),
		TimeOnly: local.Format(layoutTimeOnly),
	}, nil
}
