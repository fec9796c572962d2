package repository

import (
	"context"

	"github.com/biztime/api/internal/model"
	"github.com/biztime/api/internal/server"
)

// CompanyRepository provides access to companies and their related rows.
type CompanyRepository interface {
	// List returns all companies in whatever order the store yields them.
	List(ctx context.Context) ([]model.Company, error)

	// GetByCode returns a company with its invoices and industry names.
	GetByCode(ctx context.Context, code string) (*model.CompanyDetail, error)

	// Create inserts a company. The code is decided by the caller
	// (either client-supplied or slugified from the name).
	Create(ctx context.Context, code, name string, description *string) (*model.Company, error)

	// Update replaces name and description for an existing code.
	Update(ctx context.Context, code, name string, description *string) (*model.Company, error)

	// Delete removes a company. Referencing invoices or associations
	// block the delete with a conflict error.
	Delete(ctx context.Context, code string) error
}

// InvoiceRepository provides access to invoices.
type InvoiceRepository interface {
	List(ctx context.Context) ([]model.Invoice, error)

	// GetByID returns an invoice joined with its owning company.
	GetByID(ctx context.Context, id int64) (*model.InvoiceDetail, error)

	// Create inserts an invoice for an existing company; paid defaults
	// false, add_date to the current date.
	Create(ctx context.Context, compCode string, amt float64) (*model.Invoice, error)

	// Update replaces amt and recomputes paid/paid_date: paid true sets
	// paid_date to the current date, paid false clears it, paid nil
	// leaves both untouched.
	Update(ctx context.Context, id int64, amt float64, paid *bool) (*model.Invoice, error)

	Delete(ctx context.Context, id int64) error
}

// IndustryRepository provides access to industries and the
// company-industry association.
type IndustryRepository interface {
	// List returns every industry with the codes of its associated
	// companies; industries without companies carry an empty slice.
	List(ctx context.Context) ([]model.IndustryWithCompanies, error)

	Create(ctx context.Context, code, industry string) (*model.Industry, error)

	// Associate pairs an industry with a company. There is no update
	// operation for associations, only create.
	Associate(ctx context.Context, indCode, compCode string) (*model.Association, error)
}

// Repositories is the container for all repository instances, wired once
// at startup and handed to the HTTP layer.
type Repositories struct {
	Companies  CompanyRepository
	Invoices   InvoiceRepository
	Industries IndustryRepository
}

// NewRepositories constructs the repository container on top of the
// shared connection pool owned by the application container.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Companies:  NewCompanyRepository(s.DB.Pool),
		Invoices:   NewInvoiceRepository(s.DB.Pool),
		Industries: NewIndustryRepository(s.DB.Pool),
	}
}
