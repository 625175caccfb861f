package repository

import (
	"context"
	"time"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

func (r *Repository) CreateAbsenceRequest(request *domain.AbsenceRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO absence_requests (company_id, cleaner_id, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at, version
	`

	args := []any{request.CompanyID, request.CleanerID, request.StartDate, request.EndDate, request.Reason}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.ID, &request.Status, &request.CreatedAt, &request.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAbsenceRequestByID(companyID, id int64) (*domain.AbsenceRequest, error) {
	query := `
		SELECT cleaner_id, start_date, end_date, reason, status, created_at, version
		FROM absence_requests WHERE company_id = $1 AND id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	request := &domain.AbsenceRequest{
		ID:        id,
		CompanyID: companyID,
	}

	dst := []any{&request.CleanerID, &request.StartDate, &request.EndDate, &request.Reason, &request.Status, &request.CreatedAt, &request.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, companyID, id).Scan(dst...); err != nil {
		return nil, err
	}

	return request, nil
}

// GetAbsenceRequests lists requests, optionally narrowed to one cleaner
// (cleanerID = 0 lists the whole company).
func (r *Repository) GetAbsenceRequests(companyID, cleanerID int64) ([]*domain.AbsenceRequest, error) {
	query := `
		SELECT id, cleaner_id, start_date, end_date, reason, status, created_at, version
		FROM absence_requests
		WHERE company_id = $1 AND ($2::bigint = 0 OR cleaner_id = $2)
		ORDER BY start_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, cleanerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.AbsenceRequest, 0)
	for rows.Next() {
		request := &domain.AbsenceRequest{CompanyID: companyID}
		dst := []any{&request.ID, &request.CleanerID, &request.StartDate, &request.EndDate, &request.Reason, &request.Status, &request.CreatedAt, &request.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// ApprovedAbsencesForDate feeds the schedule checker's block test: approved
// requests whose inclusive range contains the date.
func (r *Repository) ApprovedAbsencesForDate(companyID int64, date time.Time) ([]*domain.AbsenceRequest, error) {
	query := `
		SELECT id, cleaner_id, start_date, end_date, reason, created_at, version
		FROM absence_requests
		WHERE company_id = $1
			AND status = 'approved'
			AND start_date <= $2
			AND end_date >= $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.AbsenceRequest, 0)
	for rows.Next() {
		request := &domain.AbsenceRequest{CompanyID: companyID, Status: domain.AbsenceStatusApproved}
		dst := []any{&request.ID, &request.CleanerID, &request.StartDate, &request.EndDate, &request.Reason, &request.CreatedAt, &request.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *Repository) UpdateAbsenceRequestStatus(request *domain.AbsenceRequest) error {
	query := `
		UPDATE absence_requests
		SET
			status = $1,
			version = version + 1
		WHERE company_id = $2 AND id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{request.Status, request.CompanyID, request.ID, request.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.Version); err != nil {
		return err
	}

	return nil
}
