package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/tidycrew-dev/clean-manager/backend/internal/config"
	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
	"github.com/tidycrew-dev/clean-manager/backend/internal/repository"
	"github.com/tidycrew-dev/clean-manager/backend/internal/schedule"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	checker     *schedule.Checker
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		checker:     schedule.NewChecker(repo, repo, repo, repo, repo),
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// authentication
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo) // managers need the cleaner roster for assignment
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/clients", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Post("/", h.CreateClient)
			r.Get("/", h.GetAllClients)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.clientInfo)
				r.Get("/", h.GetClient)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Patch("/", h.UpdateClient)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteClient)
			})
		})

		r.Route("/contracts", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager}))
			r.Post("/", h.CreateContract)
			r.Get("/", h.GetAllContracts)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.contractInfo)
				r.Get("/", h.GetContract)
				r.Patch("/", h.UpdateContract)
				r.Post("/status", h.UpdateContractStatus)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteContract)
			})
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.GetJobs)
			r.Get("/blocked-cleaners", h.GetBlockedCleaners)
			r.Get("/conflicting-cleaners", h.GetConflictingCleaners)
			r.Group(func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager}))
				r.Post("/", h.CreateJob)
				r.Get("/suggest-cleaner", h.SuggestCleaner)
			})
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.jobInfo)
				r.Get("/", h.GetJob)
				r.Group(func(r chi.Router) {
					r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager}))
					r.Patch("/", h.UpdateJob)
					r.Post("/status", h.UpdateJobStatus)
					r.Delete("/", h.DeleteJob)
				})
			})
		})

		r.Route("/absence-requests", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(h.myInfo)
				r.Use(h.preventInactiveUser)
				r.Post("/", h.CreateAbsenceRequest)
			})
			r.With(h.myInfo).Get("/", h.GetAbsenceRequests)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.absenceRequestInfo)
				r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager}))
				r.Post("/approve", h.ApproveAbsenceRequest)
				r.Post("/reject", h.RejectAbsenceRequest)
			})
		})

		r.Route("/availability/{cleanerID}", func(r chi.Router) {
			r.Get("/", h.GetWeeklyAvailability)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Put("/", h.ReplaceWeeklyAvailability)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager}))
			r.Post("/", h.GenerateInvoice)
			r.Get("/", h.GetAllInvoices)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.invoiceInfo)
				r.Get("/", h.GetInvoice)
				r.Post("/status", h.UpdateInvoiceStatus)
			})
		})
	})
}
