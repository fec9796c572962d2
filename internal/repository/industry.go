package repository

import (
	"context"

	"github.com/biztime/api/internal/errs"
	"github.com/biztime/api/internal/model"
	"github.com/biztime/api/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IndustryRepo is the Postgres implementation of IndustryRepository.
type IndustryRepo struct {
	pool *pgxpool.Pool
}

func NewIndustryRepository(pool *pgxpool.Pool) *IndustryRepo {
	return &IndustryRepo{pool: pool}
}

// List aggregates company codes per industry with a left outer join.
// The FILTER clause keeps the aggregate from producing [null] for
// industries that have no associations; they get an empty array instead.
func (r *IndustryRepo) List(ctx context.Context) ([]model.IndustryWithCompanies, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.code, i.industry,
		       COALESCE(array_agg(ci.comp_code) FILTER (WHERE ci.comp_code IS NOT NULL), '{}')
		FROM industries AS i
		LEFT JOIN companies_industries AS ci ON ci.ind_code = i.code
		GROUP BY i.code, i.industry`)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	industries := []model.IndustryWithCompanies{}
	for rows.Next() {
		var industry model.IndustryWithCompanies
		if err := rows.Scan(&industry.Code, &industry.Industry, &industry.CompanyCodes); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		if industry.CompanyCodes == nil {
			industry.CompanyCodes = []string{}
		}
		industries = append(industries, industry)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return industries, nil
}

func (r *IndustryRepo) Create(ctx context.Context, code, industry string) (*model.Industry, error) {
	var created model.Industry
	err := r.pool.QueryRow(ctx, `
		INSERT INTO industries (code, industry)
		VALUES ($1, $2)
		RETURNING code, industry`, code, industry).
		Scan(&created.Code, &created.Industry)
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			return nil, errs.NewConflictError("Industry code already exists", nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	return &created, nil
}

func (r *IndustryRepo) Associate(ctx context.Context, indCode, compCode string) (*model.Association, error) {
	var association model.Association
	err := r.pool.QueryRow(ctx, `
		INSERT INTO companies_industries (comp_code, ind_code)
		VALUES ($1, $2)
		RETURNING comp_code, ind_code`, compCode, indCode).
		Scan(&association.CompCode, &association.IndCode)
	if err != nil {
		switch sqlerr.ErrCode(err) {
		case sqlerr.ForeignKeyViolation:
			return nil, errs.NewNotFoundError("Either the company or the industry does not exist", nil)
		case sqlerr.UniqueViolation:
			return nil, errs.NewConflictError("Company is already associated with this industry", nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	return &association, nil
}
