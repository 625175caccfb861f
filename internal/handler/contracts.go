package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID  int64   `json:"clientID" validate:"required"`
		StartDate string  `json:"startDate" validate:"required,datetime=2006-01-02"`
		EndDate   *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// the client must exist within the caller's company
	if _, err := h.repository.GetClientByID(h.companyID(r), req.ClientID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "client not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		if parsed.Before(startDate) {
			h.errorResponse(w, r, "the end date must not be before the start date")
			return
		}
		endDate = &parsed
	}

	contract := &domain.Contract{
		CompanyID: h.companyID(r),
		ClientID:  req.ClientID,
		Status:    domain.ContractStatusDraft,
		StartDate: startDate,
		EndDate:   endDate,
	}

	if err := h.repository.CreateContract(contract); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "contract created", contract)
}

func (h *Handler) GetAllContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.repository.GetAllContracts(h.companyID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "contracts fetched", contracts)
}

func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	contract := r.Context().Value(ContractCtx).(*domain.Contract)
	h.successResponse(w, r, "contract fetched", contract)
}

func (h *Handler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate *string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
		EndDate   *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
		OpenEnded *bool   `json:"openEnded"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	contract := r.Context().Value(ContractCtx).(*domain.Contract)

	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		contract.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		contract.EndDate = &endDate
	}
	if req.OpenEnded != nil && *req.OpenEnded {
		contract.EndDate = nil
	}

	if contract.EndDate != nil && contract.EndDate.Before(contract.StartDate) {
		h.errorResponse(w, r, "the end date must not be before the start date")
		return
	}

	if err := h.repository.UpdateContract(contract); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to update the contract, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "contract updated", contract)
}

func (h *Handler) UpdateContractStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required,oneof=draft active expired cancelled"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	contract := r.Context().Value(ContractCtx).(*domain.Contract)

	// cancelled is terminal
	if contract.Status == domain.ContractStatusCancelled {
		h.errorResponse(w, r, "a cancelled contract cannot change status")
		return
	}

	contract.Status = domain.ContractStatus(req.Status)

	if err := h.repository.UpdateContract(contract); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to update the contract, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "contract status updated", contract)
}

func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	contract := r.Context().Value(ContractCtx).(*domain.Contract)

	if err := h.repository.DeleteContract(contract.CompanyID, contract.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "contract deleted", nil)
}
