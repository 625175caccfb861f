package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

// fakeStore satisfies every reader interface from in-memory slices, with
// injectable errors to exercise the fail-closed paths.
type fakeStore struct {
	jobs      []*domain.Job
	absences  []*domain.AbsenceRequest
	contracts []*domain.Contract
	windows   []*domain.CleanerAvailability
	cleaners  []*domain.User

	jobsErr      error
	absencesErr  error
	contractsErr error
	windowsErr   error
	cleanersErr  error
}

func (f *fakeStore) JobsForCleanerOnDate(companyID, cleanerID int64, date time.Time, excludeJobID int64) ([]*domain.Job, error) {
	if f.jobsErr != nil {
		return nil, f.jobsErr
	}
	var out []*domain.Job
	for _, job := range f.jobs {
		if job.CompanyID != companyID || job.CleanerID != cleanerID {
			continue
		}
		if job.Status == domain.JobStatusCancelled {
			continue
		}
		if !dateOnly(job.ScheduledDate).Equal(dateOnly(date)) {
			continue
		}
		if excludeJobID != 0 && job.ID == excludeJobID {
			continue
		}
		out = append(out, job)
	}
	return out, nil
}

func (f *fakeStore) JobsForDate(companyID int64, date time.Time, excludeJobID int64) ([]*domain.Job, error) {
	if f.jobsErr != nil {
		return nil, f.jobsErr
	}
	var out []*domain.Job
	for _, job := range f.jobs {
		if job.CompanyID != companyID || job.Status == domain.JobStatusCancelled {
			continue
		}
		if !dateOnly(job.ScheduledDate).Equal(dateOnly(date)) {
			continue
		}
		if excludeJobID != 0 && job.ID == excludeJobID {
			continue
		}
		out = append(out, job)
	}
	return out, nil
}

func (f *fakeStore) ScheduledMinutes(companyID, cleanerID int64, from, to time.Time) (int32, error) {
	if f.jobsErr != nil {
		return 0, f.jobsErr
	}
	var total int32
	for _, job := range f.jobs {
		if job.CompanyID != companyID || job.CleanerID != cleanerID {
			continue
		}
		if job.Status == domain.JobStatusCancelled {
			continue
		}
		if dateInRange(job.ScheduledDate, from, to) {
			total += job.DurationMinutes
		}
	}
	return total, nil
}

func (f *fakeStore) ApprovedAbsencesForDate(companyID int64, date time.Time) ([]*domain.AbsenceRequest, error) {
	if f.absencesErr != nil {
		return nil, f.absencesErr
	}
	var out []*domain.AbsenceRequest
	for _, absence := range f.absences {
		if absence.CompanyID != companyID || absence.Status != domain.AbsenceStatusApproved {
			continue
		}
		if dateInRange(date, absence.StartDate, absence.EndDate) {
			out = append(out, absence)
		}
	}
	return out, nil
}

func (f *fakeStore) ContractsForClient(companyID, clientID int64) ([]*domain.Contract, error) {
	if f.contractsErr != nil {
		return nil, f.contractsErr
	}
	var out []*domain.Contract
	for _, contract := range f.contracts {
		if contract.CompanyID == companyID && contract.ClientID == clientID {
			out = append(out, contract)
		}
	}
	return out, nil
}

func (f *fakeStore) WeeklyAvailability(companyID, cleanerID int64) ([]*domain.CleanerAvailability, error) {
	if f.windowsErr != nil {
		return nil, f.windowsErr
	}
	var out []*domain.CleanerAvailability
	for _, row := range f.windows {
		if row.CompanyID == companyID && row.CleanerID == cleanerID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeStore) ActiveCleaners(companyID int64) ([]*domain.User, error) {
	if f.cleanersErr != nil {
		return nil, f.cleanersErr
	}
	var out []*domain.User
	for _, user := range f.cleaners {
		if user.CompanyID == companyID && user.Role == domain.RoleCleaner && user.IsActive {
			out = append(out, user)
		}
	}
	return out, nil
}

func newTestChecker(store *fakeStore) *Checker {
	return NewChecker(store, store, store, store, store)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckOverlap_RejectsOverlappingJob(t *testing.T) {
	store := &fakeStore{
		jobs: []*domain.Job{
			{ID: 1, CompanyID: 1, ClientID: 10, CleanerID: 7, ScheduledDate: date(2024, 6, 1), StartTime: "09:00:00", DurationMinutes: 120, Status: domain.JobStatusScheduled},
		},
	}
	checker := newTestChecker(store)

	decision, err := checker.CheckOverlap(Candidate{
		CompanyID: 1, ClientID: 10, CleanerID: 7,
		Date: date(2024, 6, 1), StartTime: "10:00:00", DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.False(t, decision.OK)
	require.Contains(t, decision.Message, "09:00 to 11:00")
}

func TestCheckOverlap_AllowsBackToBackJobs(t *testing.T) {
	store := &fakeStore{
		jobs: []*domain.Job{
			{ID: 1, CompanyID: 1, CleanerID: 7, ScheduledDate: date(2024, 6, 1), StartTime: "09:00:00", DurationMinutes: 120, Status: domain.JobStatusScheduled},
		},
	}
	checker := newTestChecker(store)

	// starts exactly when the existing job ends
	decision, err := checker.CheckOverlap(Candidate{
		CompanyID: 1, CleanerID: 7,
		Date: date(2024, 6, 1), StartTime: "11:00:00", DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.True(t, decision.OK)

	// ends exactly when the existing job starts
	decision, err = checker.CheckOverlap(Candidate{
		CompanyID: 1, CleanerID: 7,
		Date: date(2024, 6, 1), StartTime: "08:00:00", DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.True(t, decision.OK)
}

func TestCheckOverlap_IgnoresOtherDatesAndCancelledJobs(t *testing.T) {
	store := &fakeStore{
		jobs: []*domain.Job{
			{ID: 1, CompanyID: 1, CleanerID: 7, ScheduledDate: date(2024, 6, 2), StartTime: "10:00:00", DurationMinutes: 60, Status: domain.JobStatusScheduled},
			{ID: 2, CompanyID: 1, CleanerID: 7, ScheduledDate: date(2024, 6, 1), StartTime: "10:00:00", DurationMinutes: 60, Status: domain.JobStatusCancelled},
		},
	}
	checker := newTestChecker(store)

	decision, err := checker.CheckOverlap(Candidate{
		CompanyID: 1, CleanerID: 7,
		Date: date(2024, 6, 1), StartTime: "10:00:00", DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.True(t, decision.OK)
}

func TestCheckOverlap_EditDoesNotConflictWithItself(t *testing.T) {
	store := &fakeStore{
		jobs: []*domain.Job{
			{ID: 42, CompanyID: 1, CleanerID: 7, ScheduledDate: date(2024, 6, 1), StartTime: "10:00:00", DurationMinutes: 60, Status: domain.JobStatusScheduled},
		},
	}
	checker := newTestChecker(store)

	decision, err := checker.CheckOverlap(Candidate{
		CompanyID: 1, CleanerID: 7,
		Date: date(2024, 6, 1), StartTime: "10:30:00", DurationMinutes: 60,
		ExcludeJobID: 42,
	})
	require.NoError(t, err)
	require.True(t, decision.OK)
}

func TestCheckOverlap_FailsClosedOnReadError(t *testing.T) {
	store := &fakeStore{jobsErr: errors.New("connection reset")}
	checker := newTestChecker(store)

	decision, err := checker.CheckOverlap(Candidate{
		CompanyID: 1, CleanerID: 7,
		Date: date(2024, 6, 1), StartTime: "10:00:00", DurationMinutes: 60,
	})
	require.Error(t, err)
	require.False(t, decision.OK)
}

func TestCheckAbsence_RejectsApprovedAbsence(t *testing.T) {
	store := &fakeStore{
		absences: []*domain.AbsenceRequest{
			{ID: 1, CompanyID: 1, CleanerID: 7, StartDate: date(2024, 7, 1), EndDate: date(2024, 7, 5), Status: domain.AbsenceStatusApproved},
		},
	}
	checker := newTestChecker(store)

	decision, err := checker.CheckAbsence(1, 7, date(2024, 7, 3))
	require.NoError(t, err)
	require.False(t, decision.OK)
	require.Contains(t, decision.Message, "approved absence")
}

func TestCheckAbsence_InclusiveRangeBoundaries(t *testing.T) {
	store := &fakeStore{
		absences: []*domain.AbsenceRequest{
			{ID: 1, CompanyID: 1, CleanerID: 7, StartDate: date(2024, 7, 1), EndDate: date(2024, 7, 5), Status: domain.AbsenceStatusApproved},
		},
	}
	checker := newTestChecker(store)

	for _, day := range []time.Time{date(2024, 7, 1), date(2024, 7, 5)} {
		decision, err := checker.CheckAbsence(1, 7, day)
		require.NoError(t, err)
		require.False(t, decision.OK, "day %s should be blocked", day.Format("2006-01-02"))
	}

	decision, err := checker.CheckAbsence(1, 7, date(2024, 7, 6))
	require.NoError(t, err)
	require.True(t, decision.OK)
}

func TestCheckAbsence_IgnoresPendingAndRejected(t *testing.T) {
	store := &fakeStore{
		absences: []*domain.AbsenceRequest{
			{ID: 1, CompanyID: 1, CleanerID: 7, StartDate: date(2024, 7, 1), EndDate: date(2024, 7, 5), Status: domain.AbsenceStatusPending},
			{ID: 2, CompanyID: 1, CleanerID: 7, StartDate: date(2024, 7, 1), EndDate: date(2024, 7, 5), Status: domain.AbsenceStatusRejected},
		},
	}
	checker := newTestChecker(store)

	decision, err := checker.CheckAbsence(1, 7, date(2024, 7, 3))
	require.NoError(t, err)
	require.True(t, decision.OK)
}

func TestCheckContract_RejectsExpiredOnlyClient(t *testing.T) {
	past := date(2023, 12, 31)
	store := &fakeStore{
		contracts: []*domain.Contract{
			{ID: 1, CompanyID: 1, ClientID: 10, Status: domain.ContractStatusExpired, StartDate: date(2023, 1, 1), EndDate: &past},
		},
	}
	checker := newTestChecker(store)
	checker.now = func() time.Time { return date(2024, 6, 1) }

	decision, err := checker.CheckContract(1, 10)
	require.NoError(t, err)
	require.False(t, decision.OK)
	require.Contains(t, decision.Message, "no valid service contract")
}

func TestCheckContract_AcceptsActiveOpenEnded(t *testing.T) {
	store := &fakeStore{
		contracts: []*domain.Contract{
			{ID: 1, CompanyID: 1, ClientID: 10, Status: domain.ContractStatusActive, StartDate: date(2024, 1, 1)},
		},
	}
	checker := newTestChecker(store)
	checker.now = func() time.Time { return date(2024, 6, 1) }

	decision, err := checker.CheckContract(1, 10)
	require.NoError(t, err)
	require.True(t, decision.OK)
}

func TestCheckContract_EndDateIsInclusive(t *testing.T) {
	end := date(2024, 6, 1)
	store := &fakeStore{
		contracts: []*domain.Contract{
			{ID: 1, CompanyID: 1, ClientID: 10, Status: domain.ContractStatusActive, StartDate: date(2024, 1, 1), EndDate: &end},
		},
	}
	checker := newTestChecker(store)

	// the contract ends today: still valid at noon
	checker.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	decision, err := checker.CheckContract(1, 10)
	require.NoError(t, err)
	require.True(t, decision.OK)

	// the day after it is not
	checker.now = func() time.Time { return time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC) }
	decision, err = checker.CheckContract(1, 10)
	require.NoError(t, err)
	require.False(t, decision.OK)
}

func TestCheckContract_RejectsActiveContractNotYetStarted(t *testing.T) {
	store := &fakeStore{
		contracts: []*domain.Contract{
			{ID: 1, CompanyID: 1, ClientID: 10, Status: domain.ContractStatusActive, StartDate: date(2024, 9, 1)},
		},
	}
	checker := newTestChecker(store)
	checker.now = func() time.Time { return date(2024, 6, 1) }

	decision, err := checker.CheckContract(1, 10)
	require.NoError(t, err)
	require.False(t, decision.OK)
}

func TestCheckWeeklyWindow_UnconstrainedWithoutRows(t *testing.T) {
	checker := newTestChecker(&fakeStore{})

	decision, err := checker.CheckWeeklyWindow(Candidate{
		CompanyID: 1, CleanerID: 7,
		Date: date(2024, 6, 3), StartTime: "22:00:00", DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.True(t, decision.OK)
}

func TestCheckWeeklyWindow_EnforcesWindow(t *testing.T) {
	store := &fakeStore{
		windows: []*domain.CleanerAvailability{
			// 2024-06-03 is a Monday (weekday 1)
			{ID: 1, CompanyID: 1, CleanerID: 7, DayOfWeek: 1, IsAvailable: true, StartTime: "09:00:00", EndTime: "17:00:00"},
		},
	}
	checker := newTestChecker(store)

	decision, err := checker.CheckWeeklyWindow(Candidate{
		CompanyID: 1, CleanerID: 7,
		Date: date(2024, 6, 3), StartTime: "10:00:00", DurationMinutes: 120,
	})
	require.NoError(t, err)
	require.True(t, decision.OK)

	decision, err = checker.CheckWeeklyWindow(Candidate{
		CompanyID: 1, CleanerID: 7,
		Date: date(2024, 6, 3), StartTime: "16:00:00", DurationMinutes: 120,
	})
	require.NoError(t, err)
	require.False(t, decision.OK)

	// no window at all on Tuesday
	decision, err = checker.CheckWeeklyWindow(Candidate{
		CompanyID: 1, CleanerID: 7,
		Date: date(2024, 6, 4), StartTime: "10:00:00", DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.False(t, decision.OK)
}

func TestCheckWeeklyWindow_UnavailableRowGrantsNothing(t *testing.T) {
	store := &fakeStore{
		windows: []*domain.CleanerAvailability{
			{ID: 1, CompanyID: 1, CleanerID: 7, DayOfWeek: 1, IsAvailable: false, StartTime: "09:00:00", EndTime: "17:00:00"},
		},
	}
	checker := newTestChecker(store)

	decision, err := checker.CheckWeeklyWindow(Candidate{
		CompanyID: 1, CleanerID: 7,
		Date: date(2024, 6, 3), StartTime: "10:00:00", DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.False(t, decision.OK)
}

func TestBlockedCleaners_DeduplicatesOverlappingRequests(t *testing.T) {
	store := &fakeStore{
		absences: []*domain.AbsenceRequest{
			{ID: 1, CompanyID: 1, CleanerID: 7, StartDate: date(2024, 7, 1), EndDate: date(2024, 7, 5), Status: domain.AbsenceStatusApproved},
			{ID: 2, CompanyID: 1, CleanerID: 7, StartDate: date(2024, 7, 3), EndDate: date(2024, 7, 10), Status: domain.AbsenceStatusApproved},
			{ID: 3, CompanyID: 1, CleanerID: 8, StartDate: date(2024, 7, 3), EndDate: date(2024, 7, 3), Status: domain.AbsenceStatusApproved},
		},
	}
	checker := newTestChecker(store)

	blocked, err := checker.BlockedCleaners(1, date(2024, 7, 3))
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{7, 8}, blocked)
}

func TestConflictingCleaners_ReturnsOnlyOverlappedCleaners(t *testing.T) {
	store := &fakeStore{
		jobs: []*domain.Job{
			{ID: 1, CompanyID: 1, CleanerID: 7, ScheduledDate: date(2024, 6, 1), StartTime: "09:00:00", DurationMinutes: 120, Status: domain.JobStatusScheduled},
			{ID: 2, CompanyID: 1, CleanerID: 8, ScheduledDate: date(2024, 6, 1), StartTime: "13:00:00", DurationMinutes: 60, Status: domain.JobStatusScheduled},
			{ID: 3, CompanyID: 1, CleanerID: 9, ScheduledDate: date(2024, 6, 1), StartTime: "10:30:00", DurationMinutes: 30, Status: domain.JobStatusScheduled},
		},
	}
	checker := newTestChecker(store)

	conflicted, err := checker.ConflictingCleaners(1, date(2024, 6, 1), "10:00:00", 60, 0)
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{7, 9}, conflicted)
}

func TestValidateJob_ShortCircuitsOnAbsence(t *testing.T) {
	store := &fakeStore{
		absences: []*domain.AbsenceRequest{
			{ID: 1, CompanyID: 1, CleanerID: 7, StartDate: date(2024, 7, 1), EndDate: date(2024, 7, 5), Status: domain.AbsenceStatusApproved},
		},
		// the contract read would fail, proving it is never reached
		contractsErr: errors.New("must not be called"),
	}
	checker := newTestChecker(store)

	decision, err := checker.ValidateJob(Candidate{
		CompanyID: 1, ClientID: 10, CleanerID: 7,
		Date: date(2024, 7, 3), StartTime: "10:00:00", DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.False(t, decision.OK)
	require.Contains(t, decision.Message, "approved absence")
}

func TestValidateJob_AcceptsCleanCandidate(t *testing.T) {
	store := &fakeStore{
		contracts: []*domain.Contract{
			{ID: 1, CompanyID: 1, ClientID: 10, Status: domain.ContractStatusActive, StartDate: date(2024, 1, 1)},
		},
		jobs: []*domain.Job{
			{ID: 1, CompanyID: 1, CleanerID: 7, ScheduledDate: date(2024, 6, 1), StartTime: "09:00:00", DurationMinutes: 120, Status: domain.JobStatusScheduled},
		},
	}
	checker := newTestChecker(store)
	checker.now = func() time.Time { return date(2024, 6, 1) }

	decision, err := checker.ValidateJob(Candidate{
		CompanyID: 1, ClientID: 10, CleanerID: 7,
		Date: date(2024, 6, 1), StartTime: "11:00:00", DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.True(t, decision.OK)
	require.Empty(t, decision.Message)
}

func TestValidateJob_FailsClosedWhenContractReadFails(t *testing.T) {
	store := &fakeStore{contractsErr: errors.New("backend unavailable")}
	checker := newTestChecker(store)

	decision, err := checker.ValidateJob(Candidate{
		CompanyID: 1, ClientID: 10, CleanerID: 7,
		Date: date(2024, 6, 1), StartTime: "11:00:00", DurationMinutes: 60,
	})
	require.Error(t, err)
	require.False(t, decision.OK)
}

func TestValidateJob_RejectsInvalidStartTime(t *testing.T) {
	checker := newTestChecker(&fakeStore{
		contracts: []*domain.Contract{
			{ID: 1, CompanyID: 1, ClientID: 10, Status: domain.ContractStatusActive, StartDate: date(2024, 1, 1)},
		},
	})
	checker.now = func() time.Time { return date(2024, 6, 1) }

	_, err := checker.ValidateJob(Candidate{
		CompanyID: 1, ClientID: 10, CleanerID: 7,
		Date: date(2024, 6, 1), StartTime: "25:99", DurationMinutes: 60,
	})
	require.Error(t, err)
}
