package domain

import "time"

type JobStatus string

const (
	JobStatusScheduled JobStatus = "scheduled"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
)

type Job struct {
	ID              int64     `json:"id"`
	CompanyID       int64     `json:"companyID"`
	ClientID        int64     `json:"clientID"`
	CleanerID       int64     `json:"cleanerID"`
	ScheduledDate   time.Time `json:"scheduledDate"`
	StartTime       string    `json:"startTime"` // wall clock, "15:04:05"
	DurationMinutes int32     `json:"durationMinutes"`
	Status          JobStatus `json:"status"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	Version         int32     `json:"-"`
}
