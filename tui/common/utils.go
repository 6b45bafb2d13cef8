package common

import (
	"strconv"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Fixed unit lengths in seconds. A month is a flat 30 days; there is no
// calendar awareness.
const (
	secondsPerMinute = 60
	secondsPerHour   = 3_600
	secondsPerDay    = 86_400
	secondsPerMonth  = 2_592_000
	secondsPerYear   = 31_536_000
)

// RelativeTime renders the elapsed time since t as the largest applicable
// unit, integer-truncated: "42s", "5m", "3h", "2d", "1mo", "1y".
func RelativeTime(t, now time.Time) string {
	seconds := int64(now.Sub(t).Seconds())
	if seconds < 0 {
		seconds = 0
	}
	switch {
	case seconds >= secondsPerYear:
		return strconv.FormatInt(seconds/secondsPerYear, 10) + "y"
	case seconds >= secondsPerMonth:
		return strconv.FormatInt(seconds/secondsPerMonth, 10) + "mo"
	case seconds >= secondsPerDay:
		return strconv.FormatInt(seconds/secondsPerDay, 10) + "d"
	case seconds >= secondsPerHour:
		return strconv.FormatInt(seconds/secondsPerHour, 10) + "h"
	case seconds >= secondsPerMinute:
		return strconv.FormatInt(seconds/secondsPerMinute, 10) + "m"
	default:
		return strconv.FormatInt(seconds, 10) + "s"
	}
}

// Truncate shortens styled text to the given display width, appending an
// ellipsis when anything was cut.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(text, width, "…")
}
