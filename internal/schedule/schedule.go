// Package schedule holds the booking rules that guard job creation and
// reassignment: absence blocks, contract validity, weekly availability windows
// and time-slot conflicts. All checks are pure reads; persistence happens in
// the caller only after every check passes.
//
// Every check fails closed: when an underlying read fails, the error is
// returned alongside a zero Decision, and callers must treat it as a rejection
// rather than as "no conflict found".
package schedule

import (
	"time"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

// Candidate are the parameters of a job about to be created or edited.
// ExcludeJobID is the ID of the job being edited so it does not conflict with
// itself; zero means no exclusion.
type Candidate struct {
	CompanyID       int64
	ClientID        int64
	CleanerID       int64
	Date            time.Time
	StartTime       string // "15:04:05"
	DurationMinutes int32
	ExcludeJobID    int64
}

// Decision is the outcome of a single check. Message is only set when the
// candidate was rejected and is meant to be shown to the user as-is.
type Decision struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func accept() Decision {
	return Decision{OK: true}
}

func reject(message string) Decision {
	return Decision{OK: false, Message: message}
}

type JobReader interface {
	// JobsForCleanerOnDate returns the non-cancelled jobs assigned to one
	// cleaner on the given date, leaving out excludeJobID when it is non-zero.
	JobsForCleanerOnDate(companyID, cleanerID int64, date time.Time, excludeJobID int64) ([]*domain.Job, error)
	// JobsForDate is the company-wide variant used to build selector sets.
	JobsForDate(companyID int64, date time.Time, excludeJobID int64) ([]*domain.Job, error)
	// ScheduledMinutes sums the non-cancelled job minutes of one cleaner over
	// the inclusive date range [from, to].
	ScheduledMinutes(companyID, cleanerID int64, from, to time.Time) (int32, error)
}

type AbsenceReader interface {
	// ApprovedAbsencesForDate returns the approved absence requests whose
	// inclusive date range contains the given date.
	ApprovedAbsencesForDate(companyID int64, date time.Time) ([]*domain.AbsenceRequest, error)
}

type ContractReader interface {
	ContractsForClient(companyID, clientID int64) ([]*domain.Contract, error)
}

type AvailabilityReader interface {
	WeeklyAvailability(companyID, cleanerID int64) ([]*domain.CleanerAvailability, error)
}

type CleanerReader interface {
	ActiveCleaners(companyID int64) ([]*domain.User, error)
}

// Checker evaluates booking rules against the readers it was built with.
type Checker struct {
	jobs      JobReader
	absences  AbsenceReader
	contracts ContractReader
	windows   AvailabilityReader
	cleaners  CleanerReader

	now func() time.Time // swapped out in tests
}

func NewChecker(jobs JobReader, absences AbsenceReader, contracts ContractReader, windows AvailabilityReader, cleaners CleanerReader) *Checker {
	return &Checker{
		jobs:      jobs,
		absences:  absences,
		contracts: contracts,
		windows:   windows,
		cleaners:  cleaners,
		now:       time.Now,
	}
}
