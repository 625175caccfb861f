package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
	"github.com/tidycrew-dev/clean-manager/backend/internal/utils"
)

func (h *Handler) cleanerFromURL(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	cleanerIDParam := chi.URLParam(r, "cleanerID")
	cleanerID, err := parseID(cleanerIDParam)
	if err != nil {
		h.errorResponse(w, r, "invalid cleaner ID")
		return nil, false
	}

	cleaner, err := h.repository.GetUserByID(cleanerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "cleaner not found")
		default:
			h.internalServerError(w, r, err)
		}
		return nil, false
	}

	if cleaner.CompanyID != h.companyID(r) || cleaner.Role != domain.RoleCleaner {
		h.errorResponse(w, r, "cleaner not found")
		return nil, false
	}

	return cleaner, true
}

func (h *Handler) GetWeeklyAvailability(w http.ResponseWriter, r *http.Request) {
	cleaner, ok := h.cleanerFromURL(w, r)
	if !ok {
		return
	}

	template, err := h.repository.WeeklyAvailability(cleaner.CompanyID, cleaner.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "weekly availability fetched", template)
}

func (h *Handler) ReplaceWeeklyAvailability(w http.ResponseWriter, r *http.Request) {
	cleaner, ok := h.cleanerFromURL(w, r)
	if !ok {
		return
	}

	var req struct {
		Template []struct {
			DayOfWeek   int32  `json:"dayOfWeek"`
			IsAvailable bool   `json:"isAvailable"`
			StartTime   string `json:"startTime" validate:"required,datetime=15:04:05"`
			EndTime     string `json:"endTime" validate:"required,datetime=15:04:05"`
		} `json:"template" validate:"dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	template := make([]*domain.CleanerAvailability, 0, len(req.Template))
	for _, row := range req.Template {
		template = append(template, &domain.CleanerAvailability{
			CompanyID:   cleaner.CompanyID,
			CleanerID:   cleaner.ID,
			DayOfWeek:   row.DayOfWeek,
			IsAvailable: row.IsAvailable,
			StartTime:   row.StartTime,
			EndTime:     row.EndTime,
		})
	}

	if err := utils.ValidateWeeklyTemplate(template); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.ReplaceWeeklyAvailability(cleaner.CompanyID, cleaner.ID, template); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "weekly availability replaced", template)
}
