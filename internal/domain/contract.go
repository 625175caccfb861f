package domain

import "time"

type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "draft"
	ContractStatusActive    ContractStatus = "active"
	ContractStatusExpired   ContractStatus = "expired"
	ContractStatusCancelled ContractStatus = "cancelled"
)

type Contract struct {
	ID        int64          `json:"id"`
	CompanyID int64          `json:"companyID"`
	ClientID  int64          `json:"clientID"`
	Status    ContractStatus `json:"status"`
	StartDate time.Time      `json:"startDate"`
	EndDate   *time.Time     `json:"endDate"` // nil means open-ended
	CreatedAt time.Time      `json:"createdAt"`
	Version   int32          `json:"-"`
}
