package domain

import "time"

type AbsenceStatus string

const (
	AbsenceStatusPending  AbsenceStatus = "pending"
	AbsenceStatusApproved AbsenceStatus = "approved"
	AbsenceStatusRejected AbsenceStatus = "rejected"
)

// AbsenceRequest covers the inclusive date range [StartDate, EndDate].
// Only approved requests block scheduling.
type AbsenceRequest struct {
	ID        int64         `json:"id"`
	CompanyID int64         `json:"companyID"`
	CleanerID int64         `json:"cleanerID"`
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
	Reason    string        `json:"reason"`
	Status    AbsenceStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	Version   int32         `json:"-"`
}
