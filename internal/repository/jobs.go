package repository

import (
	"context"
	"time"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

func (r *Repository) CreateJob(job *domain.Job) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO jobs (company_id, client_id, cleaner_id, scheduled_date, start_time, duration_minutes, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	args := []any{job.CompanyID, job.ClientID, job.CleanerID, job.ScheduledDate, job.StartTime, job.DurationMinutes, job.Status, job.Notes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&job.ID, &job.CreatedAt, &job.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetJobByID(companyID, id int64) (*domain.Job, error) {
	query := `
		SELECT client_id, cleaner_id, scheduled_date, start_time, duration_minutes, status, notes, created_at, version
		FROM jobs WHERE company_id = $1 AND id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	job := &domain.Job{
		ID:        id,
		CompanyID: companyID,
	}

	dst := []any{&job.ClientID, &job.CleanerID, &job.ScheduledDate, &job.StartTime, &job.DurationMinutes, &job.Status, &job.Notes, &job.CreatedAt, &job.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, companyID, id).Scan(dst...); err != nil {
		return nil, err
	}

	return job, nil
}

// GetJobsInRange lists jobs over the inclusive date range [from, to].
// Pass cleanerID = 0 to list jobs for every cleaner.
func (r *Repository) GetJobsInRange(companyID int64, from, to time.Time, cleanerID int64) ([]*domain.Job, error) {
	query := `
		SELECT id, client_id, cleaner_id, scheduled_date, start_time, duration_minutes, status, notes, created_at, version
		FROM jobs
		WHERE company_id = $1
			AND scheduled_date BETWEEN $2 AND $3
			AND ($4::bigint = 0 OR cleaner_id = $4)
		ORDER BY scheduled_date, start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, from, to, cleanerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job := &domain.Job{CompanyID: companyID}
		dst := []any{&job.ID, &job.ClientID, &job.CleanerID, &job.ScheduledDate, &job.StartTime, &job.DurationMinutes, &job.Status, &job.Notes, &job.CreatedAt, &job.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

// JobsForCleanerOnDate feeds the schedule checker's overlap test. Cancelled
// jobs do not occupy the slot; excludeJobID = 0 excludes nothing.
func (r *Repository) JobsForCleanerOnDate(companyID, cleanerID int64, date time.Time, excludeJobID int64) ([]*domain.Job, error) {
	query := `
		SELECT id, client_id, start_time, duration_minutes, status, notes, created_at, version
		FROM jobs
		WHERE company_id = $1
			AND cleaner_id = $2
			AND scheduled_date = $3
			AND status <> 'cancelled'
			AND ($4::bigint = 0 OR id <> $4)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, cleanerID, date, excludeJobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job := &domain.Job{CompanyID: companyID, CleanerID: cleanerID, ScheduledDate: date}
		dst := []any{&job.ID, &job.ClientID, &job.StartTime, &job.DurationMinutes, &job.Status, &job.Notes, &job.CreatedAt, &job.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

// JobsForDate is the company-wide variant used to compute the conflicted
// cleaner set for the assignment selector.
func (r *Repository) JobsForDate(companyID int64, date time.Time, excludeJobID int64) ([]*domain.Job, error) {
	query := `
		SELECT id, client_id, cleaner_id, start_time, duration_minutes, status, notes, created_at, version
		FROM jobs
		WHERE company_id = $1
			AND scheduled_date = $2
			AND status <> 'cancelled'
			AND ($3::bigint = 0 OR id <> $3)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, date, excludeJobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job := &domain.Job{CompanyID: companyID, ScheduledDate: date}
		dst := []any{&job.ID, &job.ClientID, &job.CleanerID, &job.StartTime, &job.DurationMinutes, &job.Status, &job.Notes, &job.CreatedAt, &job.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

// ScheduledMinutes sums a cleaner's non-cancelled job minutes over the
// inclusive date range [from, to].
func (r *Repository) ScheduledMinutes(companyID, cleanerID int64, from, to time.Time) (int32, error) {
	query := `
		SELECT COALESCE(SUM(duration_minutes), 0)
		FROM jobs
		WHERE company_id = $1
			AND cleaner_id = $2
			AND scheduled_date BETWEEN $3 AND $4
			AND status <> 'cancelled'
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var minutes int32
	if err := r.dbpool.QueryRowContext(ctx, query, companyID, cleanerID, from, to).Scan(&minutes); err != nil {
		return 0, err
	}

	return minutes, nil
}

func (r *Repository) UpdateJob(job *domain.Job) error {
	query := `
		UPDATE jobs
		SET
			client_id = $1,
			cleaner_id = $2,
			scheduled_date = $3,
			start_time = $4,
			duration_minutes = $5,
			status = $6,
			notes = $7,
			version = version + 1
		WHERE company_id = $8 AND id = $9 AND version = $10
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{job.ClientID, job.CleanerID, job.ScheduledDate, job.StartTime, job.DurationMinutes, job.Status, job.Notes, job.CompanyID, job.ID, job.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&job.CreatedAt, &job.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteJob(companyID, id int64) error {
	query := `
		DELETE FROM jobs WHERE company_id = $1 AND id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, companyID, id)
	if err != nil {
		return err
	}

	return nil
}

// CompletedUninvoicedJobs returns the client's completed jobs inside the
// inclusive period that no invoice line references yet.
func (r *Repository) CompletedUninvoicedJobs(companyID, clientID int64, from, to time.Time) ([]*domain.Job, error) {
	query := `
		SELECT j.id, j.cleaner_id, j.scheduled_date, j.start_time, j.duration_minutes, j.notes, j.created_at, j.version
		FROM jobs j
		WHERE j.company_id = $1
			AND j.client_id = $2
			AND j.scheduled_date BETWEEN $3 AND $4
			AND j.status = 'completed'
			AND NOT EXISTS (SELECT 1 FROM invoice_items ii WHERE ii.job_id = j.id)
		ORDER BY j.scheduled_date, j.start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, clientID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job := &domain.Job{CompanyID: companyID, ClientID: clientID, Status: domain.JobStatusCompleted}
		dst := []any{&job.ID, &job.CleanerID, &job.ScheduledDate, &job.StartTime, &job.DurationMinutes, &job.Notes, &job.CreatedAt, &job.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
