package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ChangeEmailMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type JobAssignedMailData struct {
	FullName   string `json:"fullName"`
	ClientName string `json:"clientName"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	Duration   int32  `json:"duration"`
	Address    string `json:"address"`
}

type InvoiceIssuedMailData struct {
	ClientName  string `json:"clientName"`
	Number      string `json:"number"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
	TotalCents  int64  `json:"totalCents"`
}
