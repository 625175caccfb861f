package repository

import (
	"context"
	"time"

	"github.com/tidycrew-dev/clean-manager/backend/internal/domain"
)

func (r *Repository) CreateContract(contract *domain.Contract) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO contracts (company_id, client_id, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{contract.CompanyID, contract.ClientID, contract.Status, contract.StartDate, contract.EndDate}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&contract.ID, &contract.CreatedAt, &contract.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetContractByID(companyID, id int64) (*domain.Contract, error) {
	query := `
		SELECT client_id, status, start_date, end_date, created_at, version
		FROM contracts WHERE company_id = $1 AND id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	contract := &domain.Contract{
		ID:        id,
		CompanyID: companyID,
	}

	dst := []any{&contract.ClientID, &contract.Status, &contract.StartDate, &contract.EndDate, &contract.CreatedAt, &contract.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, companyID, id).Scan(dst...); err != nil {
		return nil, err
	}

	return contract, nil
}

func (r *Repository) GetAllContracts(companyID int64) ([]*domain.Contract, error) {
	query := `
		SELECT id, client_id, status, start_date, end_date, created_at, version
		FROM contracts WHERE company_id = $1
		ORDER BY start_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := make([]*domain.Contract, 0)
	for rows.Next() {
		contract := &domain.Contract{CompanyID: companyID}
		dst := []any{&contract.ID, &contract.ClientID, &contract.Status, &contract.StartDate, &contract.EndDate, &contract.CreatedAt, &contract.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return contracts, nil
}

// ContractsForClient feeds the schedule checker's contract validity check.
func (r *Repository) ContractsForClient(companyID, clientID int64) ([]*domain.Contract, error) {
	query := `
		SELECT id, status, start_date, end_date, created_at, version
		FROM contracts WHERE company_id = $1 AND client_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, companyID, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := make([]*domain.Contract, 0)
	for rows.Next() {
		contract := &domain.Contract{CompanyID: companyID, ClientID: clientID}
		dst := []any{&contract.ID, &contract.Status, &contract.StartDate, &contract.EndDate, &contract.CreatedAt, &contract.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return contracts, nil
}

func (r *Repository) UpdateContract(contract *domain.Contract) error {
	query := `
		UPDATE contracts
		SET
			status = $1,
			start_date = $2,
			end_date = $3,
			version = version + 1
		WHERE company_id = $4 AND id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{contract.Status, contract.StartDate, contract.EndDate, contract.CompanyID, contract.ID, contract.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&contract.CreatedAt, &contract.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteContract(companyID, id int64) error {
	query := `
		DELETE FROM contracts WHERE company_id = $1 AND id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, companyID, id)
	if err != nil {
		return err
	}

	return nil
}
