package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

func (r *Repository) CreateInvoice(invoice *domain.Invoice) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO invoices (company_id, client_id, number, period_start, period_end, status, total_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`
	args := []any{invoice.CompanyID, invoice.ClientID, invoice.Number, invoice.PeriodStart, invoice.PeriodEnd, invoice.Status, invoice.TotalCents}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.Version); err != nil {
		return err
	}

	for i := range invoice.Items {
		query = `
			INSERT INTO invoice_items (invoice_id, job_id, description, minutes, amount_cents)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		params := []any{invoice.ID, invoice.Items[i].JobID, invoice.Items[i].Description, invoice.Items[i].Minutes, invoice.Items[i].AmountCents}
		if err := tx.QueryRowContext(ctx, query, params...).Scan(&invoice.Items[i].ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetInvoiceByID(companyID, id int64) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			i.client_id,
			i.number,
			i.period_start,
			i.period_end,
			i.status,
			i.total_cents,
			i.created_at,
			i.version,
			ii.id,
			ii.job_id,
			ii.description,
			ii.minutes,
			ii.amount_cents
		FROM invoices i
		LEFT JOIN invoice_items ii ON i.id = ii.invoice_id
		WHERE i.company_id = $1 AND i.id = $2
		ORDER BY ii.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoice := &domain.Invoice{
		ID:        id,
		CompanyID: companyID,
		Items:     make([]domain.InvoiceItem, 0),
	}
	found := false

	for rows.Next() {
		var row struct {
			ClientID    int64
			Number      string
			PeriodStart time.Time
			PeriodEnd   time.Time
			Status      domain.InvoiceStatus
			TotalCents  int64
			CreatedAt   time.Time
			Version     int32

			ItemID      sql.NullInt64
			JobID       sql.NullInt64
			Description sql.NullString
			Minutes     sql.NullInt32
			AmountCents sql.NullInt64
		}

		dst := []any{
			&row.ClientID,
			&row.Number,
			&row.PeriodStart,
			&row.PeriodEnd,
			&row.Status,
			&row.TotalCents,
			&row.CreatedAt,
			&row.Version,
			&row.ItemID,
			&row.JobID,
			&row.Description,
			&row.Minutes,
			&row.AmountCents,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !found {
			invoice.ClientID = row.ClientID
			invoice.Number = row.Number
			invoice.PeriodStart = row.PeriodStart
			invoice.PeriodEnd = row.PeriodEnd
			invoice.Status = row.Status
			invoice.TotalCents = row.TotalCents
			invoice.CreatedAt = row.CreatedAt
			invoice.Version = row.Version
			found = true
		}

		// a NULL item id means the invoice has no line items
		if !row.ItemID.Valid {
			continue
		}

		invoice.Items = append(invoice.Items, domain.InvoiceItem{
			ID:          row.ItemID.Int64,
			JobID:       row.JobID.Int64,
			Description: row.Description.String,
			Minutes:     row.Minutes.Int32,
			AmountCents: row.AmountCents.Int64,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return invoice, nil
}

// GetAllInvoices lists invoice metadata without line items.
func (r *Repository) GetAllInvoices(companyID int64) ([]*domain.Invoice, error) {
	query := `
		SELECT id, client_id, number, period_start, period_end, status, total_cents, created_at, version
		FROM invoices WHERE company_id = $1
		ORDER BY created_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]*domain.Invoice, 0)
	for rows.Next() {
		invoice := &domain.Invoice{CompanyID: companyID}
		dst := []any{&invoice.ID, &invoice.ClientID, &invoice.Number, &invoice.PeriodStart, &invoice.PeriodEnd, &invoice.Status, &invoice.TotalCents, &invoice.CreatedAt, &invoice.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *Repository) UpdateInvoiceStatus(invoice *domain.Invoice) error {
	query := `
		UPDATE invoices
		SET
			status = $1,
			version = version + 1
		WHERE company_id = $2 AND id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{invoice.Status, invoice.CompanyID, invoice.ID, invoice.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&invoice.Version); err != nil {
		return err
	}

	return nil
}
