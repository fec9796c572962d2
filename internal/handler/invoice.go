package handler

import (
	"github.com/biztime/api/internal/model"
	"github.com/biztime/api/internal/repository"
	"github.com/biztime/api/internal/server"
	"github.com/biztime/api/internal/validation"
	"github.com/labstack/echo/v4"
)

// InvoiceHandler serves the /invoices resource.
type InvoiceHandler struct {
	Handler
	repo repository.InvoiceRepository
}

func NewInvoiceHandler(s *server.Server, repo repository.InvoiceRepository) *InvoiceHandler {
	return &InvoiceHandler{
		Handler: NewHandler(s),
		repo:    repo,
	}
}

type ListInvoicesRequest struct{}

func (r *ListInvoicesRequest) Validate() error { return nil }

type GetInvoiceRequest struct {
	ID int64 `param:"id" validate:"required"`
}

func (r *GetInvoiceRequest) Validate() error { return validation.Struct(r) }

type CreateInvoiceRequest struct {
	CompCode string  `json:"comp_code" validate:"required"`
	Amt      float64 `json:"amt" validate:"required"`
}

func (r *CreateInvoiceRequest) Validate() error { return validation.Struct(r) }

// UpdateInvoiceRequest drives the paid_date recompute policy: Paid is a
// *bool so an omitted field (nil) is distinguishable from an explicit
// false and leaves the stored paid state untouched.
type UpdateInvoiceRequest struct {
	ID   int64   `param:"id" validate:"required"`
	Amt  float64 `json:"amt" validate:"required"`
	Paid *bool   `json:"paid"`
}

func (r *UpdateInvoiceRequest) Validate() error { return validation.Struct(r) }

type DeleteInvoiceRequest struct {
	ID int64 `param:"id" validate:"required"`
}

func (r *DeleteInvoiceRequest) Validate() error { return validation.Struct(r) }

type invoicesEnvelope struct {
	Invoices []model.Invoice `json:"invoices"`
}

type invoiceEnvelope struct {
	Invoice any `json:"invoice"`
}

func (h *InvoiceHandler) List(c echo.Context, _ *ListInvoicesRequest) (invoicesEnvelope, error) {
	invoices, err := h.repo.List(c.Request().Context())
	if err != nil {
		return invoicesEnvelope{}, err
	}
	return invoicesEnvelope{Invoices: invoices}, nil
}

func (h *InvoiceHandler) Get(c echo.Context, req *GetInvoiceRequest) (invoiceEnvelope, error) {
	invoice, err := h.repo.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return invoiceEnvelope{}, err
	}
	return invoiceEnvelope{Invoice: invoice}, nil
}

func (h *InvoiceHandler) Create(c echo.Context, req *CreateInvoiceRequest) (invoiceEnvelope, error) {
	invoice, err := h.repo.Create(c.Request().Context(), req.CompCode, req.Amt)
	if err != nil {
		return invoiceEnvelope{}, err
	}
	return invoiceEnvelope{Invoice: invoice}, nil
}

func (h *InvoiceHandler) Update(c echo.Context, req *UpdateInvoiceRequest) (invoiceEnvelope, error) {
	invoice, err := h.repo.Update(c.Request().Context(), req.ID, req.Amt, req.Paid)
	if err != nil {
		return invoiceEnvelope{}, err
	}
	return invoiceEnvelope{Invoice: invoice}, nil
}

func (h *InvoiceHandler) Delete(c echo.Context, req *DeleteInvoiceRequest) (statusEnvelope, error) {
	if err := h.repo.Delete(c.Request().Context(), req.ID); err != nil {
		return statusEnvelope{}, err
	}
	return statusEnvelope{Status: "deleted"}, nil
}
