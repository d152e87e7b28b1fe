// Package schedule derives display state from course sessions: durations and
// calendar occurrences.
package schedule

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// ParseClock parses a zero-padded 24-hour "HH:MM" into minutes since
// midnight.
func ParseClock(s string) (int, bool) {
	if len(s) != len(clockLayout) {
		return 0, false
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// Duration renders the span between two clock times, e.g. "1 hr 30 min".
// Unparseable, equal or inverted times give "".
func Duration(start, end string) string {
	minutes, ok := DurationMinutes(start, end)
	if !ok {
		return ""
	}

	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%d hr %d min", h, m)
	case h > 0:
		return fmt.Sprintf("%d hr", h)
	default:
		return fmt.Sprintf("%d min", m)
	}
}

func DurationMinutes(start, end string) (int, bool) {
	s, ok := ParseClock(start)
	if !ok {
		return 0, false
	}
	e, ok := ParseClock(end)
	if !ok {
		return 0, false
	}
	if e <= s {
		return 0, false
	}
	return e - s, true
}
