package repository

import (
	"context"
	"time"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

func (r *Repository) CreateClient(client *domain.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO clients (company_id, name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, version
	`

	args := []any{client.CompanyID, client.Name, client.Email, client.Phone, client.Address}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&client.ID, &client.IsActive, &client.CreatedAt, &client.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetClientByID(companyID, id int64) (*domain.Client, error) {
	query := `
		SELECT name, email, phone, address, is_active, created_at, version
		FROM clients WHERE company_id = $1 AND id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	client := &domain.Client{
		ID:        id,
		CompanyID: companyID,
	}

	dst := []any{&client.Name, &client.Email, &client.Phone, &client.Address, &client.IsActive, &client.CreatedAt, &client.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, companyID, id).Scan(dst...); err != nil {
		return nil, err
	}

	return client, nil
}

func (r *Repository) GetAllClients(companyID int64) ([]*domain.Client, error) {
	query := `
		SELECT id, name, email, phone, address, is_active, created_at, version
		FROM clients WHERE company_id = $1
		ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client := &domain.Client{CompanyID: companyID}
		dst := []any{&client.ID, &client.Name, &client.Email, &client.Phone, &client.Address, &client.IsActive, &client.CreatedAt, &client.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *Repository) UpdateClient(client *domain.Client) error {
	query := `
		UPDATE clients
		SET
			name = $1,
			email = $2,
			phone = $3,
			address = $4,
			is_active = $5,
			version = version + 1
		WHERE company_id = $6 AND id = $7 AND version = $8
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{client.Name, client.Email, client.Phone, client.Address, client.IsActive, client.CompanyID, client.ID, client.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&client.CreatedAt, &client.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteClient(companyID, id int64) error {
	query := `
		DELETE FROM clients WHERE company_id = $1 AND id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, companyID, id)
	if err != nil {
		return err
	}

	return nil
}
