package repository

import (
	"context"
	"time"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

func (r *Repository) CreateCompany(company *domain.Company) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO companies (name)
		VALUES ($1)
		RETURNING id, created_at, version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, company.Name).Scan(&company.ID, &company.CreatedAt, &company.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetCompanyByID(id int64) (*domain.Company, error) {
	query := `
		SELECT name, created_at, version FROM companies WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	company := &domain.Company{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&company.Name, &company.CreatedAt, &company.Version); err != nil {
		return nil, err
	}

	return company, nil
}

func (r *Repository) GetCompanyByName(name string) (*domain.Company, error) {
	query := `
		SELECT id, created_at, version FROM companies WHERE name = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	company := &domain.Company{
		Name: name,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, name).Scan(&company.ID, &company.CreatedAt, &company.Version); err != nil {
		return nil, err
	}

	return company, nil
}
