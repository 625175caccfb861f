package utils

import (
	"fmt"
	"time"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

// ValidateWeeklyTemplate checks a cleaner's weekly availability rows before
// they replace the stored template: well-formed times, end after start, valid
// weekday, and no two available windows overlapping on the same weekday.
func ValidateWeeklyTemplate(template []*domain.CleanerAvailability) error {
	for i, row := range template {
		if row.DayOfWeek < 0 || row.DayOfWeek > 6 {
			return fmt.Errorf("row %d has an invalid day of week", i+1)
		}

		startTime, err := time.Parse("15:04:05", row.StartTime)
		if err != nil {
			return fmt.Errorf("row %d has a malformed start time", i+1)
		}
		endTime, err := time.Parse("15:04:05", row.EndTime)
		if err != nil {
			return fmt.Errorf("row %d has a malformed end time", i+1)
		}
		if !endTime.After(startTime) {
			return fmt.Errorf("row %d must end after it starts", i+1)
		}
	}

	for i := 0; i < len(template); i++ {
		if !template[i].IsAvailable {
			continue
		}
		iStart, _ := time.Parse("15:04:05", template[i].StartTime)
		iEnd, _ := time.Parse("15:04:05", template[i].EndTime)

		for j := i + 1; j < len(template); j++ {
			if !template[j].IsAvailable || template[i].DayOfWeek != template[j].DayOfWeek {
				continue
			}
			jStart, _ := time.Parse("15:04:05", template[j].StartTime)
			jEnd, _ := time.Parse("15:04:05", template[j].EndTime)

			if iStart.Before(jEnd) && jStart.Before(iEnd) {
				return fmt.Errorf("rows %d and %d overlap on the same weekday", i+1, j+1)
			}
		}
	}

	return nil
}

// ValidateDateRange checks an inclusive calendar range such as an absence
// request or an invoicing period.
func ValidateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("end date must not be before start date")
	}
	return nil
}
