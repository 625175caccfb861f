package domain

import "time"

type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
)

type InvoiceItem struct {
	ID          int64  `json:"id"`
	JobID       int64  `json:"jobID"`
	Description string `json:"description"`
	Minutes     int32  `json:"minutes"`
	AmountCents int64  `json:"amountCents"`
}

type Invoice struct {
	ID          int64         `json:"id"`
	CompanyID   int64         `json:"companyID"`
	ClientID    int64         `json:"clientID"`
	Number      string        `json:"number"`
	PeriodStart time.Time     `json:"periodStart"`
	PeriodEnd   time.Time     `json:"periodEnd"`
	Status      InvoiceStatus `json:"status"`
	TotalCents  int64         `json:"totalCents"`
	Items       []InvoiceItem `json:"items"`
	CreatedAt   time.Time     `json:"createdAt"`
	Version     int32         `json:"-"`
}
