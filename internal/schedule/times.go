package schedule

import (
	"fmt"
	"time"
)

const wallClockLayout = "15:04:05"

// minuteOfDay converts a "15:04:05" wall-clock string into minutes since
// midnight. Seconds are ignored, matching how jobs are entered (whole minutes).
func minuteOfDay(clock string) (int32, error) {
	t, err := time.Parse(wallClockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid wall-clock time %q: %w", clock, err)
	}
	return int32(t.Hour()*60 + t.Minute()), nil
}

// overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back intervals (aEnd == bStart) do not.
func overlaps(aStart, aEnd, bStart, bEnd int32) bool {
	return aStart < bEnd && bStart < aEnd
}

// dateOnly strips the time-of-day component so calendar dates compare cleanly
// regardless of how the timestamp was produced.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dateInRange reports whether day falls inside the inclusive calendar range
// [start, end].
func dateInRange(day, start, end time.Time) bool {
	d := dateOnly(day)
	return !d.Before(dateOnly(start)) && !d.After(dateOnly(end))
}
