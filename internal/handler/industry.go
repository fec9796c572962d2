package handler

import (
	"github.com/biztime/api/internal/model"
	"github.com/biztime/api/internal/repository"
	"github.com/biztime/api/internal/server"
	"github.com/biztime/api/internal/validation"
	"github.com/labstack/echo/v4"
)

// IndustryHandler serves the /industries resource and the
// company-industry association endpoint.
type IndustryHandler struct {
	Handler
	repo repository.IndustryRepository
}

func NewIndustryHandler(s *server.Server, repo repository.IndustryRepository) *IndustryHandler {
	return &IndustryHandler{
		Handler: NewHandler(s),
		repo:    repo,
	}
}

type ListIndustriesRequest struct{}

func (r *ListIndustriesRequest) Validate() error { return nil }

type CreateIndustryRequest struct {
	Code     string `json:"code" validate:"required"`
	Industry string `json:"industry" validate:"required"`
}

func (r *CreateIndustryRequest) Validate() error { return validation.Struct(r) }

type AssociateIndustryRequest struct {
	IndCode  string `param:"code" validate:"required"`
	CompCode string `param:"comp_code" validate:"required"`
}

func (r *AssociateIndustryRequest) Validate() error { return validation.Struct(r) }

type industriesEnvelope struct {
	Industries []model.IndustryWithCompanies `json:"industries"`
}

type industryEnvelope struct {
	Industry any `json:"industry"`
}

type associationEnvelope struct {
	Association any `json:"association"`
}

func (h *IndustryHandler) List(c echo.Context, _ *ListIndustriesRequest) (industriesEnvelope, error) {
	industries, err := h.repo.List(c.Request().Context())
	if err != nil {
		return industriesEnvelope{}, err
	}
	return industriesEnvelope{Industries: industries}, nil
}

func (h *IndustryHandler) Create(c echo.Context, req *CreateIndustryRequest) (industryEnvelope, error) {
	industry, err := h.repo.Create(c.Request().Context(), req.Code, req.Industry)
	if err != nil {
		return industryEnvelope{}, err
	}
	return industryEnvelope{Industry: industry}, nil
}

func (h *IndustryHandler) Associate(c echo.Context, req *AssociateIndustryRequest) (associationEnvelope, error) {
	association, err := h.repo.Associate(c.Request().Context(), req.IndCode, req.CompCode)
	if err != nil {
		return associationEnvelope{}, err
	}
	return associationEnvelope{Association: association}, nil
}
