package handler

import (
	"github.com/biztime/api/internal/model"
	"github.com/biztime/api/internal/repository"
	"github.com/biztime/api/internal/server"
	"github.com/biztime/api/internal/validation"
	"github.com/gosimple/slug"
	"github.com/labstack/echo/v4"
)

// CompanyHandler serves the /companies resource.
type CompanyHandler struct {
	Handler
	repo repository.CompanyRepository
}

func NewCompanyHandler(s *server.Server, repo repository.CompanyRepository) *CompanyHandler {
	return &CompanyHandler{
		Handler: NewHandler(s),
		repo:    repo,
	}
}

type ListCompaniesRequest struct{}

func (r *ListCompaniesRequest) Validate() error { return nil }

type GetCompanyRequest struct {
	Code string `param:"code" validate:"required"`
}

func (r *GetCompanyRequest) Validate() error { return validation.Struct(r) }

// CreateCompanyRequest accepts an optional code; when absent the code is
// derived by slugifying the name.
type CreateCompanyRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

func (r *CreateCompanyRequest) Validate() error { return validation.Struct(r) }

type UpdateCompanyRequest struct {
	Code        string  `param:"code" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

func (r *UpdateCompanyRequest) Validate() error { return validation.Struct(r) }

type DeleteCompanyRequest struct {
	Code string `param:"code" validate:"required"`
}

func (r *DeleteCompanyRequest) Validate() error { return validation.Struct(r) }

type companiesEnvelope struct {
	Companies []model.Company `json:"companies"`
}

type companyEnvelope struct {
	Company any `json:"company"`
}

func (h *CompanyHandler) List(c echo.Context, _ *ListCompaniesRequest) (companiesEnvelope, error) {
	companies, err := h.repo.List(c.Request().Context())
	if err != nil {
		return companiesEnvelope{}, err
	}
	return companiesEnvelope{Companies: companies}, nil
}

func (h *CompanyHandler) Get(c echo.Context, req *GetCompanyRequest) (companyEnvelope, error) {
	company, err := h.repo.GetByCode(c.Request().Context(), req.Code)
	if err != nil {
		return companyEnvelope{}, err
	}
	return companyEnvelope{Company: company}, nil
}

func (h *CompanyHandler) Create(c echo.Context, req *CreateCompanyRequest) (companyEnvelope, error) {
	code := req.Code
	if code == "" {
		code = slug.Make(req.Name)
	}

	company, err := h.repo.Create(c.Request().Context(), code, req.Name, req.Description)
	if err != nil {
		return companyEnvelope{}, err
	}
	return companyEnvelope{Company: company}, nil
}

func (h *CompanyHandler) Update(c echo.Context, req *UpdateCompanyRequest) (companyEnvelope, error) {
	company, err := h.repo.Update(c.Request().Context(), req.Code, req.Name, req.Description)
	if err != nil {
		return companyEnvelope{}, err
	}
	return companyEnvelope{Company: company}, nil
}

func (h *CompanyHandler) Delete(c echo.Context, req *DeleteCompanyRequest) (statusEnvelope, error) {
	if err := h.repo.Delete(c.Request().Context(), req.Code); err != nil {
		return statusEnvelope{}, err
	}
	return statusEnvelope{Status: "deleted"}, nil
}
