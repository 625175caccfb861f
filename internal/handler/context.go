package handler

type ContextKey string

var (
	RoleCtxKey        ContextKey = "role"
	SubCtxKey         ContextKey = "sub"
	CompanyCtxKey     ContextKey = "company"
	MyInfoCtx         ContextKey = "myInfo"
	UserInfoCtx       ContextKey = "userInfo"
	ClientCtx         ContextKey = "client"
	ContractCtx       ContextKey = "contract"
	JobCtx            ContextKey = "job"
	AbsenceRequestCtx ContextKey = "absenceRequest"
	InvoiceCtx        ContextKey = "invoice"
)
