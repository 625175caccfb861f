package schedule

import (
	"errors"
	"time"
)

// ErrNoCleanerAvailable is returned when every active cleaner is blocked,
// conflicted or outside their weekly window for the requested slot.
var ErrNoCleanerAvailable = errors.New("no cleaner available for this slot")

// SuggestCleaner picks an assignable cleaner for the given slot, preferring
// the one with the fewest scheduled minutes in the surrounding week so work
// spreads evenly across the crew.
func (c *Checker) SuggestCleaner(companyID, clientID int64, date time.Time, startTime string, durationMinutes int32) (int64, error) {
	cleaners, err := c.cleaners.ActiveCleaners(companyID)
	if err != nil {
		return 0, err
	}

	blocked, err := c.BlockedCleaners(companyID, date)
	if err != nil {
		return 0, err
	}
	conflicted, err := c.ConflictingCleaners(companyID, date, startTime, durationMinutes, 0)
	if err != nil {
		return 0, err
	}

	excluded := make(map[int64]bool, len(blocked)+len(conflicted))
	for _, id := range blocked {
		excluded[id] = true
	}
	for _, id := range conflicted {
		excluded[id] = true
	}

	weekStart := dateOnly(date).AddDate(0, 0, -3)
	weekEnd := dateOnly(date).AddDate(0, 0, 3)

	var bestID int64
	var bestMinutes int32
	found := false

	for _, cleaner := range cleaners {
		if excluded[cleaner.ID] {
			continue
		}

		decision, err := c.CheckWeeklyWindow(Candidate{
			CompanyID:       companyID,
			ClientID:        clientID,
			CleanerID:       cleaner.ID,
			Date:            date,
			StartTime:       startTime,
			DurationMinutes: durationMinutes,
		})
		if err != nil {
			return 0, err
		}
		if !decision.OK {
			continue
		}

		minutes, err := c.jobs.ScheduledMinutes(companyID, cleaner.ID, weekStart, weekEnd)
		if err != nil {
			return 0, err
		}

		if !found || minutes < bestMinutes {
			bestID = cleaner.ID
			bestMinutes = minutes
			found = true
		}
	}

	if !found {
		return 0, ErrNoCleanerAvailable
	}

	return bestID, nil
}
