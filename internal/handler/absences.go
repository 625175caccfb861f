package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
	"github.com/tidycrew-dev/clean-manager/backend/internal/utils"
)

func (h *Handler) CreateAbsenceRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	if myInfo.Role != domain.RoleCleaner {
		h.errorResponse(w, r, "only cleaners can file absence requests")
		return
	}

	var req struct {
		StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
		EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
		Reason    string `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateDateRange(startDate, endDate); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	request := &domain.AbsenceRequest{
		CompanyID: myInfo.CompanyID,
		CleanerID: myInfo.ID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Status:    domain.AbsenceStatusPending,
	}

	if err := h.repository.CreateAbsenceRequest(request); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "absence request filed", request)
}

func (h *Handler) GetAbsenceRequests(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	// cleaners only ever see their own requests
	cleanerID := int64(0)
	if myInfo.Role == domain.RoleCleaner {
		cleanerID = myInfo.ID
	}

	requests, err := h.repository.GetAbsenceRequests(myInfo.CompanyID, cleanerID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "absence requests fetched", requests)
}

func (h *Handler) ApproveAbsenceRequest(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(AbsenceRequestCtx).(*domain.AbsenceRequest)

	if request.Status != domain.AbsenceStatusPending {
		h.errorResponse(w, r, "the request has already been decided")
		return
	}

	request.Status = domain.AbsenceStatusApproved

	if err := h.repository.UpdateAbsenceRequestStatus(request); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to update the request, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "absence request approved", request)
}

func (h *Handler) RejectAbsenceRequest(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(AbsenceRequestCtx).(*domain.AbsenceRequest)

	if request.Status != domain.AbsenceStatusPending {
		h.errorResponse(w, r, "the request has already been decided")
		return
	}

	request.Status = domain.AbsenceStatusRejected

	if err := h.repository.UpdateAbsenceRequestStatus(request); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to update the request, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "absence request rejected", request)
}
