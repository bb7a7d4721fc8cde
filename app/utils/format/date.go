package format

import "time"

const (
	dateLayout     = "Jan 2, 2006"
	dateTimeLayout = "Jan 2, 2006, 03:04 PM"
)

var displayLocation = time.UTC

// SetLocation fixes the zone dates are shown in. It is meant to be called
// once at startup.
func SetLocation(loc *time.Location) {
	if loc != nil {
		displayLocation = loc
	}
}

// Date formats t as "Jan 2, 2006". The zero time renders as "-".
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(displayLocation).Format(dateLayout)
}

// DateTime formats t as "Jan 2, 2006, 03:04 PM". The zero time renders as "-".
func DateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(displayLocation).Format(dateTimeLayout)
}
