package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/biztime/api/internal/errs"
	"github.com/biztime/api/internal/model"
	"github.com/biztime/api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CompanyRepo is the Postgres implementation of CompanyRepository.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

func (r *CompanyRepo) List(ctx context.Context) ([]model.Company, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT code, name, description
		FROM companies`)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	companies := []model.Company{}
	for rows.Next() {
		var company model.Company
		if err := rows.Scan(&company.Code, &company.Name, &company.Description); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return companies, nil
}

// GetByCode loads the company row, then its invoices, then its industry
// names: three sequential reads on the shared pool, no transaction.
func (r *CompanyRepo) GetByCode(ctx context.Context, code string) (*model.CompanyDetail, error) {
	detail := &model.CompanyDetail{
		Invoices:   []model.CompanyInvoice{},
		Industries: []string{},
	}

	err := r.pool.QueryRow(ctx, `
		SELECT code, name, description
		FROM companies
		WHERE code = $1`, code).
		Scan(&detail.Code, &detail.Name, &detail.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("No company found with code: %s", code), nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, amt, paid, add_date, paid_date
		FROM invoices
		WHERE comp_code = $1`, code)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var invoice model.CompanyInvoice
		var addDate, paidDate dateValue
		if err := rows.Scan(&invoice.ID, &invoice.Amt, &invoice.Paid, &addDate, &paidDate); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		invoice.AddDate = addDate.date()
		invoice.PaidDate = paidDate.datePtr()
		detail.Invoices = append(detail.Invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	industryRows, err := r.pool.Query(ctx, `
		SELECT i.industry
		FROM industries AS i
		JOIN companies_industries AS ci ON ci.ind_code = i.code
		WHERE ci.comp_code = $1`, code)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer industryRows.Close()

	for industryRows.Next() {
		var industry string
		if err := industryRows.Scan(&industry); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		detail.Industries = append(detail.Industries, industry)
	}
	if err := industryRows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return detail, nil
}

func (r *CompanyRepo) Create(ctx context.Context, code, name string, description *string) (*model.Company, error) {
	var company model.Company
	err := r.pool.QueryRow(ctx, `
		INSERT INTO companies (code, name, description)
		VALUES ($1, $2, $3)
		RETURNING code, name, description`, code, name, description).
		Scan(&company.Code, &company.Name, &company.Description)
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			return nil, errs.NewConflictError("Company code already exists", nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	return &company, nil
}

func (r *CompanyRepo) Update(ctx context.Context, code, name string, description *string) (*model.Company, error) {
	var company model.Company
	err := r.pool.QueryRow(ctx, `
		UPDATE companies
		SET name = $2, description = $3
		WHERE code = $1
		RETURNING code, name, description`, code, name, description).
		Scan(&company.Code, &company.Name, &company.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("Company not found with code: %s", code), nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	return &company, nil
}

func (r *CompanyRepo) Delete(ctx context.Context, code string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM companies
		WHERE code = $1`, code)
	if err != nil {
		// Invoices or industry associations still reference this code.
		if sqlerr.ErrCode(err) == sqlerr.ForeignKeyViolation {
			return errs.NewConflictError("Company cannot be deleted while invoices or industry associations reference it", nil)
		}
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError(fmt.Sprintf("Company not found with code: %s", code), nil)
	}

	return nil
}
