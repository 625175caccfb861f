package domain

// CleanerAvailability is one row of a cleaner's weekly recurring template.
// A cleaner with no rows at all is considered unconstrained.
type CleanerAvailability struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"companyID"`
	CleanerID   int64  `json:"cleanerID"`
	DayOfWeek   int32  `json:"dayOfWeek"` // 0 = Sunday ... 6 = Saturday
	IsAvailable bool   `json:"isAvailable"`
	StartTime   string `json:"startTime"` // "15:04:05"
	EndTime     string `json:"endTime"`
}
