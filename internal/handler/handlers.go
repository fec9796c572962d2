package handler

import (
	"github.com/biztime/api/internal/repository"
	"github.com/biztime/api/internal/server"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Health     *HealthHandler
	Companies  *CompanyHandler
	Invoices   *InvoiceHandler
	Industries *IndustryHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, repos *repository.Repositories) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		Companies:  NewCompanyHandler(s, repos.Companies),
		Invoices:   NewInvoiceHandler(s, repos.Invoices),
		Industries: NewIndustryHandler(s, repos.Industries),
	}
}

// statusEnvelope is the response body for successful deletes.
type statusEnvelope struct {
	Status string `json:"status"`
}
