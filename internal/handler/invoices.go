package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

func (h *Handler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID      int64  `json:"clientID" validate:"required"`
		PeriodStart   string `json:"periodStart" validate:"required,datetime=2006-01-02"`
		PeriodEnd     string `json:"periodEnd" validate:"required,datetime=2006-01-02"`
		RateCentsHour int64  `json:"rateCentsPerHour" validate:"required,gt=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	client, err := h.repository.GetClientByID(h.companyID(r), req.ClientID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "client not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if periodEnd.Before(periodStart) {
		h.errorResponse(w, r, "the end of the period must not be before its start")
		return
	}

	jobs, err := h.repository.CompletedUninvoicedJobs(h.companyID(r), client.ID, periodStart, periodEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if len(jobs) == 0 {
		h.errorResponse(w, r, "no completed uninvoiced jobs in this period")
		return
	}

	invoice := &domain.Invoice{
		CompanyID:   h.companyID(r),
		ClientID:    client.ID,
		Number:      uuid.New().String(),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      domain.InvoiceStatusDraft,
	}

	for _, job := range jobs {
		amount := int64(job.DurationMinutes) * req.RateCentsHour / 60
		invoice.Items = append(invoice.Items, domain.InvoiceItem{
			JobID:       job.ID,
			Description: fmt.Sprintf("cleaning on %s", job.ScheduledDate.Format("2006-01-02")),
			Minutes:     job.DurationMinutes,
			AmountCents: amount,
		})
		invoice.TotalCents += amount
	}

	if err := h.repository.CreateInvoice(invoice); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "invoice generated", invoice)
}

func (h *Handler) GetAllInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.repository.GetAllInvoices(h.companyID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "invoices fetched", invoices)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoice := r.Context().Value(InvoiceCtx).(*domain.Invoice)
	h.successResponse(w, r, "invoice fetched", invoice)
}

func (h *Handler) UpdateInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required,oneof=sent paid"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	invoice := r.Context().Value(InvoiceCtx).(*domain.Invoice)
	newStatus := domain.InvoiceStatus(req.Status)

	// draft -> sent -> paid, no skipping and no going back
	valid := (invoice.Status == domain.InvoiceStatusDraft && newStatus == domain.InvoiceStatusSent) ||
		(invoice.Status == domain.InvoiceStatusSent && newStatus == domain.InvoiceStatusPaid)
	if !valid {
		h.errorResponse(w, r, fmt.Sprintf("an invoice cannot move from %s to %s", invoice.Status, newStatus))
		return
	}

	invoice.Status = newStatus

	if err := h.repository.UpdateInvoiceStatus(invoice); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to update the invoice, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if newStatus == domain.InvoiceStatusSent {
		client, err := h.repository.GetClientByID(invoice.CompanyID, invoice.ClientID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		if client.Email != "" {
			mailMessage := domain.MailMessage{
				Type: "invoice_issued",
				To:   client.Email,
				Data: domain.InvoiceIssuedMailData{
					ClientName:  client.Name,
					Number:      invoice.Number,
					PeriodStart: invoice.PeriodStart.Format("2006-01-02"),
					PeriodEnd:   invoice.PeriodEnd.Format("2006-01-02"),
					TotalCents:  invoice.TotalCents,
				},
			}

			if err := h.queueMail(mailMessage); err != nil {
				h.internalServerError(w, r, err)
				return
			}
		}
	}

	h.successResponse(w, r, "invoice status updated", invoice)
}
