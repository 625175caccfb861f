package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

func row(day int32, available bool, start, end string) *domain.CleanerAvailability {
	return &domain.CleanerAvailability{DayOfWeek: day, IsAvailable: available, StartTime: start, EndTime: end}
}

func TestValidateWeeklyTemplate(t *testing.T) {
	cases := []struct {
		name     string
		template []*domain.CleanerAvailability
		wantErr  string
	}{
		{
			name: "valid disjoint windows",
			template: []*domain.CleanerAvailability{
				row(1, true, "08:00:00", "12:00:00"),
				row(1, true, "13:00:00", "17:00:00"),
				row(2, true, "08:00:00", "17:00:00"),
			},
		},
		{
			name: "back-to-back windows are allowed",
			template: []*domain.CleanerAvailability{
				row(1, true, "08:00:00", "12:00:00"),
				row(1, true, "12:00:00", "16:00:00"),
			},
		},
		{
			name:     "invalid weekday",
			template: []*domain.CleanerAvailability{row(7, true, "08:00:00", "12:00:00")},
			wantErr:  "invalid day of week",
		},
		{
			name:     "malformed start time",
			template: []*domain.CleanerAvailability{row(1, true, "8am", "12:00:00")},
			wantErr:  "malformed start time",
		},
		{
			name:     "end before start",
			template: []*domain.CleanerAvailability{row(1, true, "12:00:00", "08:00:00")},
			wantErr:  "must end after it starts",
		},
		{
			name: "overlapping windows on the same weekday",
			template: []*domain.CleanerAvailability{
				row(1, true, "08:00:00", "12:00:00"),
				row(1, true, "11:00:00", "15:00:00"),
			},
			wantErr: "overlap",
		},
		{
			name: "unavailable rows never overlap",
			template: []*domain.CleanerAvailability{
				row(1, false, "08:00:00", "12:00:00"),
				row(1, true, "11:00:00", "15:00:00"),
			},
		},
		{
			name: "same window on different weekdays",
			template: []*domain.CleanerAvailability{
				row(1, true, "08:00:00", "12:00:00"),
				row(2, true, "08:00:00", "12:00:00"),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWeeklyTemplate(tc.template)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateDateRange(t *testing.T) {
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, ValidateDateRange(start, start))
	require.NoError(t, ValidateDateRange(start, start.AddDate(0, 0, 4)))
	require.Error(t, ValidateDateRange(start, start.AddDate(0, 0, -1)))
}
