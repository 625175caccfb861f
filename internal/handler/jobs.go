package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
	"github.com/tidycrew-dev/clean-manager/backend/internal/schedule"
)

func (h *Handler) GetJobs(w http.ResponseWriter, r *http.Request) {
	var params struct {
		From      string `validate:"required,datetime=2006-01-02"`
		To        string `validate:"required,datetime=2006-01-02"`
		CleanerID int64
	}

	params.From = r.URL.Query().Get("from")
	params.To = r.URL.Query().Get("to")
	if raw := r.URL.Query().Get("cleanerID"); raw != "" {
		cleanerID, err := parseID(raw)
		if err != nil {
			h.errorResponse(w, r, "invalid cleaner ID")
			return
		}
		params.CleanerID = cleanerID
	}

	if err := h.validate.Struct(params); err != nil {
		h.badRequest(w, r, err)
		return
	}

	from, err := time.Parse("2006-01-02", params.From)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	to, err := time.Parse("2006-01-02", params.To)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if to.Before(from) {
		h.errorResponse(w, r, "the end of the range must not be before its start")
		return
	}

	jobs, err := h.repository.GetJobsInRange(h.companyID(r), from, to, params.CleanerID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "jobs fetched", jobs)
}

func (h *Handler) GetBlockedCleaners(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	date, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		h.errorResponse(w, r, "invalid date")
		return
	}

	blocked, err := h.checker.BlockedCleaners(h.companyID(r), date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "blocked cleaners fetched", blocked)
}

func (h *Handler) GetConflictingCleaners(w http.ResponseWriter, r *http.Request) {
	var params struct {
		Date            string `validate:"required,datetime=2006-01-02"`
		StartTime       string `validate:"required,datetime=15:04:05"`
		DurationMinutes int32  `validate:"required,gt=0"`
	}

	params.Date = r.URL.Query().Get("date")
	params.StartTime = r.URL.Query().Get("startTime")
	if raw := r.URL.Query().Get("durationMinutes"); raw != "" {
		minutes, err := parseID(raw)
		if err != nil {
			h.errorResponse(w, r, "invalid duration")
			return
		}
		params.DurationMinutes = int32(minutes)
	}

	if err := h.validate.Struct(params); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := time.Parse("2006-01-02", params.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var excludeJobID int64
	if raw := r.URL.Query().Get("excludeJobID"); raw != "" {
		excludeJobID, err = parseID(raw)
		if err != nil {
			h.errorResponse(w, r, "invalid job ID")
			return
		}
	}

	conflicting, err := h.checker.ConflictingCleaners(h.companyID(r), date, params.StartTime, params.DurationMinutes, excludeJobID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "conflicting cleaners fetched", conflicting)
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID        int64  `json:"clientID" validate:"required"`
		CleanerID       int64  `json:"cleanerID" validate:"required"`
		ScheduledDate   string `json:"scheduledDate" validate:"required,datetime=2006-01-02"`
		StartTime       string `json:"startTime" validate:"required,datetime=15:04:05"`
		DurationMinutes int32  `json:"durationMinutes" validate:"required,gt=0"`
		Notes           string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	cleaner, err := h.repository.GetUserByID(req.CleanerID)
	if err != nil || cleaner.CompanyID != h.companyID(r) || cleaner.Role != domain.RoleCleaner {
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			h.internalServerError(w, r, err)
			return
		}
		h.errorResponse(w, r, "cleaner not found")
		return
	}
	if !cleaner.IsActive {
		h.errorResponse(w, r, "the cleaner is deactivated")
		return
	}

	decision, err := h.checker.ValidateJob(schedule.Candidate{
		CompanyID:       h.companyID(r),
		ClientID:        req.ClientID,
		CleanerID:       req.CleanerID,
		Date:            scheduledDate,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !decision.OK {
		h.errorResponse(w, r, decision.Message)
		return
	}

	job := &domain.Job{
		CompanyID:       h.companyID(r),
		ClientID:        req.ClientID,
		CleanerID:       req.CleanerID,
		ScheduledDate:   scheduledDate,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Status:          domain.JobStatusScheduled,
		Notes:           req.Notes,
	}

	if err := h.repository.CreateJob(job); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.notifyJobAssigned(job, cleaner); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "job created", job)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtx).(*domain.Job)
	h.successResponse(w, r, "job fetched", job)
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CleanerID       *int64  `json:"cleanerID"`
		ScheduledDate   *string `json:"scheduledDate" validate:"omitempty,datetime=2006-01-02"`
		StartTime       *string `json:"startTime" validate:"omitempty,datetime=15:04:05"`
		DurationMinutes *int32  `json:"durationMinutes" validate:"omitempty,gt=0"`
		Notes           *string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	job := r.Context().Value(JobCtx).(*domain.Job)

	if job.Status != domain.JobStatusScheduled {
		h.errorResponse(w, r, "only scheduled jobs can be rescheduled")
		return
	}

	reassigned := false
	if req.CleanerID != nil && *req.CleanerID != job.CleanerID {
		job.CleanerID = *req.CleanerID
		reassigned = true
	}
	if req.ScheduledDate != nil {
		scheduledDate, err := time.Parse("2006-01-02", *req.ScheduledDate)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		job.ScheduledDate = scheduledDate
	}
	if req.StartTime != nil {
		job.StartTime = *req.StartTime
	}
	if req.DurationMinutes != nil {
		job.DurationMinutes = *req.DurationMinutes
	}
	if req.Notes != nil {
		job.Notes = *req.Notes
	}

	cleaner, err := h.repository.GetUserByID(job.CleanerID)
	if err != nil || cleaner.CompanyID != job.CompanyID || cleaner.Role != domain.RoleCleaner {
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			h.internalServerError(w, r, err)
			return
		}
		h.errorResponse(w, r, "cleaner not found")
		return
	}
	if !cleaner.IsActive {
		h.errorResponse(w, r, "the cleaner is deactivated")
		return
	}

	// the job being edited must not conflict with itself
	decision, err := h.checker.ValidateJob(schedule.Candidate{
		CompanyID:       job.CompanyID,
		ClientID:        job.ClientID,
		CleanerID:       job.CleanerID,
		Date:            job.ScheduledDate,
		StartTime:       job.StartTime,
		DurationMinutes: job.DurationMinutes,
		ExcludeJobID:    job.ID,
	})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !decision.OK {
		h.errorResponse(w, r, decision.Message)
		return
	}

	if err := h.repository.UpdateJob(job); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to update the job, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if reassigned {
		if err := h.notifyJobAssigned(job, cleaner); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "job updated", job)
}

func (h *Handler) UpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required,oneof=completed cancelled"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	job := r.Context().Value(JobCtx).(*domain.Job)

	if job.Status != domain.JobStatusScheduled {
		h.errorResponse(w, r, "only scheduled jobs can change status")
		return
	}

	job.Status = domain.JobStatus(req.Status)

	if err := h.repository.UpdateJob(job); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to update the job, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "job status updated", job)
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtx).(*domain.Job)

	if err := h.repository.DeleteJob(job.CompanyID, job.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "job deleted", nil)
}

func (h *Handler) SuggestCleaner(w http.ResponseWriter, r *http.Request) {
	var params struct {
		ClientID        int64  `validate:"required"`
		Date            string `validate:"required,datetime=2006-01-02"`
		StartTime       string `validate:"required,datetime=15:04:05"`
		DurationMinutes int32  `validate:"required,gt=0"`
	}

	params.Date = r.URL.Query().Get("date")
	params.StartTime = r.URL.Query().Get("startTime")
	if raw := r.URL.Query().Get("clientID"); raw != "" {
		clientID, err := parseID(raw)
		if err != nil {
			h.errorResponse(w, r, "invalid client ID")
			return
		}
		params.ClientID = clientID
	}
	if raw := r.URL.Query().Get("durationMinutes"); raw != "" {
		minutes, err := parseID(raw)
		if err != nil {
			h.errorResponse(w, r, "invalid duration")
			return
		}
		params.DurationMinutes = int32(minutes)
	}

	if err := h.validate.Struct(params); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := time.Parse("2006-01-02", params.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	cleanerID, err := h.checker.SuggestCleaner(h.companyID(r), params.ClientID, date, params.StartTime, params.DurationMinutes)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrNoCleanerAvailable):
			h.errorResponse(w, r, "no cleaner is available for this slot")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	cleaner, err := h.repository.GetUserByID(cleanerID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "cleaner suggested", cleaner)
}

func (h *Handler) notifyJobAssigned(job *domain.Job, cleaner *domain.User) error {
	client, err := h.repository.GetClientByID(job.CompanyID, job.ClientID)
	if err != nil {
		return err
	}

	return h.queueMail(domain.MailMessage{
		Type: "job_assigned",
		To:   cleaner.Email,
		Data: domain.JobAssignedMailData{
			FullName:   cleaner.FullName,
			ClientName: client.Name,
			Date:       job.ScheduledDate.Format("2006-01-02"),
			StartTime:  job.StartTime,
			Duration:   job.DurationMinutes,
			Address:    client.Address,
		},
	})
}
