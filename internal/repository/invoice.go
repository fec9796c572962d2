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

// InvoiceRepo is the Postgres implementation of InvoiceRepository.
type InvoiceRepo struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

func (r *InvoiceRepo) List(ctx context.Context) ([]model.Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, comp_code, amt, paid, add_date, paid_date
		FROM invoices`)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	invoices := []model.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, sqlerr.HandleError(err)
		}
		invoices = append(invoices, *invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return invoices, nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*model.InvoiceDetail, error) {
	var detail model.InvoiceDetail
	var addDate, paidDate dateValue

	err := r.pool.QueryRow(ctx, `
		SELECT i.id, i.amt, i.paid, i.add_date, i.paid_date,
		       c.code, c.name, c.description
		FROM invoices AS i
		JOIN companies AS c ON i.comp_code = c.code
		WHERE i.id = $1`, id).
		Scan(&detail.ID, &detail.Amt, &detail.Paid, &addDate, &paidDate,
			&detail.Company.Code, &detail.Company.Name, &detail.Company.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("Invoice not found with id: %d", id), nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	detail.AddDate = addDate.date()
	detail.PaidDate = paidDate.datePtr()

	return &detail, nil
}

func (r *InvoiceRepo) Create(ctx context.Context, compCode string, amt float64) (*model.Invoice, error) {
	invoice, err := scanInvoice(r.pool.QueryRow(ctx, `
		INSERT INTO invoices (comp_code, amt)
		VALUES ($1, $2)
		RETURNING id, comp_code, amt, paid, add_date, paid_date`, compCode, amt))
	if err != nil {
		switch sqlerr.ErrCode(err) {
		case sqlerr.ForeignKeyViolation:
			// A missing company is the caller's input error, surfaced as
			// not found rather than as an integrity failure.
			return nil, errs.NewNotFoundError(fmt.Sprintf("No company found with code: %s", compCode), nil)
		case sqlerr.UniqueViolation:
			return nil, errs.NewConflictError("An invoice with this ID already exists", nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	return invoice, nil
}

// Update replaces amt and recomputes paid_date in a single statement.
// The paid parameter is bound as a nullable boolean: true stamps
// paid_date with the current date (idempotently), false clears it, and
// NULL leaves both paid and paid_date exactly as stored.
func (r *InvoiceRepo) Update(ctx context.Context, id int64, amt float64, paid *bool) (*model.Invoice, error) {
	invoice, err := scanInvoice(r.pool.QueryRow(ctx, `
		UPDATE invoices
		SET amt = $2,
		    paid = COALESCE($3, paid),
		    paid_date = CASE
		        WHEN $3 IS TRUE THEN CURRENT_DATE
		        WHEN $3 IS FALSE THEN NULL
		        ELSE paid_date
		    END
		WHERE id = $1
		RETURNING id, comp_code, amt, paid, add_date, paid_date`, id, amt, paid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("Invoice not found with id: %d", id), nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	return invoice, nil
}

func (r *InvoiceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM invoices
		WHERE id = $1`, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError(fmt.Sprintf("Invoice not found with id: %d", id), nil)
	}

	return nil
}

// scanInvoice scans a full invoice row in column order
// id, comp_code, amt, paid, add_date, paid_date.
func scanInvoice(row pgx.Row) (*model.Invoice, error) {
	var invoice model.Invoice
	var addDate, paidDate dateValue

	if err := row.Scan(&invoice.ID, &invoice.CompCode, &invoice.Amt, &invoice.Paid, &addDate, &paidDate); err != nil {
		return nil, err
	}

	invoice.AddDate = addDate.date()
	invoice.PaidDate = paidDate.datePtr()

	return &invoice, nil
}
