package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

func cleaner(id, companyID int64) *domain.User {
	return &domain.User{ID: id, CompanyID: companyID, Role: domain.RoleCleaner, IsActive: true}
}

func TestSuggestCleaner_PrefersLeastLoaded(t *testing.T) {
	store := &fakeStore{
		cleaners: []*domain.User{cleaner(7, 1), cleaner(8, 1)},
		jobs: []*domain.Job{
			{ID: 1, CompanyID: 1, CleanerID: 7, ScheduledDate: date(2024, 6, 3), StartTime: "09:00:00", DurationMinutes: 240, Status: domain.JobStatusScheduled},
			{ID: 2, CompanyID: 1, CleanerID: 8, ScheduledDate: date(2024, 6, 3), StartTime: "09:00:00", DurationMinutes: 60, Status: domain.JobStatusScheduled},
		},
	}
	checker := newTestChecker(store)

	id, err := checker.SuggestCleaner(1, 10, date(2024, 6, 4), "10:00:00", 60)
	require.NoError(t, err)
	require.Equal(t, int64(8), id)
}

func TestSuggestCleaner_SkipsBlockedAndConflicted(t *testing.T) {
	store := &fakeStore{
		cleaners: []*domain.User{cleaner(7, 1), cleaner(8, 1), cleaner(9, 1)},
		absences: []*domain.AbsenceRequest{
			{ID: 1, CompanyID: 1, CleanerID: 7, StartDate: date(2024, 6, 4), EndDate: date(2024, 6, 4), Status: domain.AbsenceStatusApproved},
		},
		jobs: []*domain.Job{
			{ID: 1, CompanyID: 1, CleanerID: 8, ScheduledDate: date(2024, 6, 4), StartTime: "10:00:00", DurationMinutes: 120, Status: domain.JobStatusScheduled},
		},
	}
	checker := newTestChecker(store)

	id, err := checker.SuggestCleaner(1, 10, date(2024, 6, 4), "10:30:00", 60)
	require.NoError(t, err)
	require.Equal(t, int64(9), id)
}

func TestSuggestCleaner_HonoursWeeklyWindows(t *testing.T) {
	store := &fakeStore{
		cleaners: []*domain.User{cleaner(7, 1), cleaner(8, 1)},
		windows: []*domain.CleanerAvailability{
			// cleaner 7 only works Monday mornings; 2024-06-04 is a Tuesday
			{ID: 1, CompanyID: 1, CleanerID: 7, DayOfWeek: 1, IsAvailable: true, StartTime: "08:00:00", EndTime: "12:00:00"},
		},
	}
	checker := newTestChecker(store)

	id, err := checker.SuggestCleaner(1, 10, date(2024, 6, 4), "10:00:00", 60)
	require.NoError(t, err)
	require.Equal(t, int64(8), id)
}

func TestSuggestCleaner_NoCandidate(t *testing.T) {
	store := &fakeStore{
		cleaners: []*domain.User{cleaner(7, 1)},
		absences: []*domain.AbsenceRequest{
			{ID: 1, CompanyID: 1, CleanerID: 7, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 30), Status: domain.AbsenceStatusApproved},
		},
	}
	checker := newTestChecker(store)

	_, err := checker.SuggestCleaner(1, 10, date(2024, 6, 4), "10:00:00", 60)
	require.ErrorIs(t, err, ErrNoCleanerAvailable)
}

func TestSuggestCleaner_IgnoresInactiveAndNonCleaners(t *testing.T) {
	inactive := &domain.User{ID: 7, CompanyID: 1, Role: domain.RoleCleaner, IsActive: false}
	manager := &domain.User{ID: 8, CompanyID: 1, Role: domain.RoleManager, IsActive: true}
	store := &fakeStore{
		cleaners: []*domain.User{inactive, manager, cleaner(9, 1)},
	}
	checker := newTestChecker(store)

	id, err := checker.SuggestCleaner(1, 10, date(2024, 6, 4), "10:00:00", 60)
	require.NoError(t, err)
	require.Equal(t, int64(9), id)
}

func TestMinuteOfDay(t *testing.T) {
	cases := []struct {
		clock   string
		want    int32
		wantErr bool
	}{
		{"00:00:00", 0, false},
		{"09:30:00", 570, false},
		{"23:59:59", 1439, false},
		{"24:00:00", 0, true},
		{"9:30", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := minuteOfDay(tc.clock)
		if tc.wantErr {
			require.Error(t, err, "clock %q", tc.clock)
			continue
		}
		require.NoError(t, err, "clock %q", tc.clock)
		require.Equal(t, tc.want, got, "clock %q", tc.clock)
	}
}

func TestOverlapsHalfOpenSemantics(t *testing.T) {
	require.True(t, overlaps(540, 660, 600, 660))  // nested
	require.True(t, overlaps(540, 660, 600, 720))  // partial
	require.False(t, overlaps(540, 660, 660, 720)) // back-to-back
	require.False(t, overlaps(660, 720, 540, 660)) // back-to-back, reversed
	require.False(t, overlaps(540, 600, 720, 780)) // disjoint
}

func TestDateInRange(t *testing.T) {
	start := date(2024, 7, 1)
	end := date(2024, 7, 5)

	require.True(t, dateInRange(date(2024, 7, 1), start, end))
	require.True(t, dateInRange(date(2024, 7, 5), start, end))
	require.True(t, dateInRange(time.Date(2024, 7, 5, 23, 30, 0, 0, time.UTC), start, end))
	require.False(t, dateInRange(date(2024, 6, 30), start, end))
	require.False(t, dateInRange(date(2024, 7, 6), start, end))
}
