package repository

import (
	"context"
	"time"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

// WeeklyAvailability returns a cleaner's recurring template rows, ordered by
// weekday so the UI can render them directly.
func (r *Repository) WeeklyAvailability(companyID, cleanerID int64) ([]*domain.CleanerAvailability, error) {
	query := `
		SELECT id, day_of_week, is_available, start_time, end_time
		FROM cleaner_availability
		WHERE company_id = $1 AND cleaner_id = $2
		ORDER BY day_of_week, start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, cleanerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	template := make([]*domain.CleanerAvailability, 0)
	for rows.Next() {
		row := &domain.CleanerAvailability{CompanyID: companyID, CleanerID: cleanerID}
		dst := []any{&row.ID, &row.DayOfWeek, &row.IsAvailable, &row.StartTime, &row.EndTime}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		template = append(template, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return template, nil
}

// ReplaceWeeklyAvailability swaps a cleaner's whole template in one
// transaction: delete the old rows, then insert the new set.
func (r *Repository) ReplaceWeeklyAvailability(companyID, cleanerID int64, template []*domain.CleanerAvailability) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM cleaner_availability WHERE company_id = $1 AND cleaner_id = $2`
	if _, err := tx.ExecContext(ctx, query, companyID, cleanerID); err != nil {
		return err
	}

	for _, row := range template {
		query := `
			INSERT INTO cleaner_availability (company_id, cleaner_id, day_of_week, is_available, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		args := []any{companyID, cleanerID, row.DayOfWeek, row.IsAvailable, row.StartTime, row.EndTime}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&row.ID); err != nil {
			return err
		}
		row.CompanyID = companyID
		row.CleanerID = cleanerID
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
