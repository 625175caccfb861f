package schedule

import (
	"fmt"
	"slices"
	"time"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

// CheckOverlap rejects the candidate when its half-open time interval
// intersects any non-cancelled job of the same cleaner on the same date.
// Back-to-back jobs (one ending exactly when the next starts) are allowed.
func (c *Checker) CheckOverlap(cand Candidate) (Decision, error) {
	candStart, err := minuteOfDay(cand.StartTime)
	if err != nil {
		return Decision{}, err
	}
	candEnd := candStart + cand.DurationMinutes

	jobs, err := c.jobs.JobsForCleanerOnDate(cand.CompanyID, cand.CleanerID, cand.Date, cand.ExcludeJobID)
	if err != nil {
		return Decision{}, err
	}

	for _, job := range jobs {
		jobStart, err := minuteOfDay(job.StartTime)
		if err != nil {
			return Decision{}, err
		}
		jobEnd := jobStart + job.DurationMinutes

		if overlaps(candStart, candEnd, jobStart, jobEnd) {
			return reject(fmt.Sprintf(
				"the cleaner already has a job from %02d:%02d to %02d:%02d on this date",
				jobStart/60, jobStart%60, jobEnd/60, jobEnd%60,
			)), nil
		}
	}

	return accept(), nil
}

// ConflictingCleaners returns the IDs of cleaners that already have a job
// overlapping the given slot, so the assignment selector can disable them.
func (c *Checker) ConflictingCleaners(companyID int64, date time.Time, startTime string, durationMinutes int32, excludeJobID int64) ([]int64, error) {
	slotStart, err := minuteOfDay(startTime)
	if err != nil {
		return nil, err
	}
	slotEnd := slotStart + durationMinutes

	jobs, err := c.jobs.JobsForDate(companyID, date, excludeJobID)
	if err != nil {
		return nil, err
	}

	conflicted := make([]int64, 0)
	for _, job := range jobs {
		jobStart, err := minuteOfDay(job.StartTime)
		if err != nil {
			return nil, err
		}
		if !overlaps(slotStart, slotEnd, jobStart, jobStart+job.DurationMinutes) {
			continue
		}
		if !slices.Contains(conflicted, job.CleanerID) {
			conflicted = append(conflicted, job.CleanerID)
		}
	}

	return conflicted, nil
}

// BlockedCleaners returns the IDs of cleaners with an approved absence request
// whose inclusive date range contains the given date.
func (c *Checker) BlockedCleaners(companyID int64, date time.Time) ([]int64, error) {
	absences, err := c.absences.ApprovedAbsencesForDate(companyID, date)
	if err != nil {
		return nil, err
	}

	blocked := make([]int64, 0)
	for _, absence := range absences {
		if !slices.Contains(blocked, absence.CleanerID) {
			blocked = append(blocked, absence.CleanerID)
		}
	}

	return blocked, nil
}

// CheckAbsence rejects the candidate cleaner when an approved absence covers
// the date. This is a hard rule: no caller may create a job past it.
func (c *Checker) CheckAbsence(companyID, cleanerID int64, date time.Time) (Decision, error) {
	absences, err := c.absences.ApprovedAbsencesForDate(companyID, date)
	if err != nil {
		return Decision{}, err
	}

	for _, absence := range absences {
		if absence.CleanerID == cleanerID {
			return reject(fmt.Sprintf(
				"the cleaner has an approved absence from %s to %s",
				absence.StartDate.Format("2006-01-02"), absence.EndDate.Format("2006-01-02"),
			)), nil
		}
	}

	return accept(), nil
}

// CheckContract accepts only clients holding at least one active contract
// whose date range covers the current moment. The end date is inclusive: a
// contract ending today is still valid until midnight.
func (c *Checker) CheckContract(companyID, clientID int64) (Decision, error) {
	contracts, err := c.contracts.ContractsForClient(companyID, clientID)
	if err != nil {
		return Decision{}, err
	}

	now := c.now()
	for _, contract := range contracts {
		if contract.Status != domain.ContractStatusActive {
			continue
		}
		if contract.StartDate.After(now) {
			continue
		}
		if contract.EndDate != nil && !dateOnly(*contract.EndDate).AddDate(0, 0, 1).After(now) {
			continue
		}
		return accept(), nil
	}

	return reject("the client has no valid service contract"), nil
}

// CheckWeeklyWindow rejects candidates falling outside the cleaner's recurring
// weekly availability template. Cleaners without any template rows are
// unconstrained; rows flagged unavailable contribute no window.
func (c *Checker) CheckWeeklyWindow(cand Candidate) (Decision, error) {
	rows, err := c.windows.WeeklyAvailability(cand.CompanyID, cand.CleanerID)
	if err != nil {
		return Decision{}, err
	}
	if len(rows) == 0 {
		return accept(), nil
	}

	candStart, err := minuteOfDay(cand.StartTime)
	if err != nil {
		return Decision{}, err
	}
	candEnd := candStart + cand.DurationMinutes
	weekday := int32(cand.Date.Weekday())

	for _, row := range rows {
		if row.DayOfWeek != weekday || !row.IsAvailable {
			continue
		}
		windowStart, err := minuteOfDay(row.StartTime)
		if err != nil {
			return Decision{}, err
		}
		windowEnd, err := minuteOfDay(row.EndTime)
		if err != nil {
			return Decision{}, err
		}
		if candStart >= windowStart && candEnd <= windowEnd {
			return accept(), nil
		}
	}

	return reject("the time slot is outside the cleaner's weekly availability"), nil
}

// ValidateJob runs the full pipeline for a job about to be persisted:
// absence block, contract validity, weekly window, time-slot overlap.
// The first rejection or read error stops the run.
func (c *Checker) ValidateJob(cand Candidate) (Decision, error) {
	decision, err := c.CheckAbsence(cand.CompanyID, cand.CleanerID, cand.Date)
	if err != nil || !decision.OK {
		return decision, err
	}

	decision, err = c.CheckContract(cand.CompanyID, cand.ClientID)
	if err != nil || !decision.OK {
		return decision, err
	}

	decision, err = c.CheckWeeklyWindow(cand)
	if err != nil || !decision.OK {
		return decision, err
	}

	return c.CheckOverlap(cand)
}
