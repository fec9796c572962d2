package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/biztime/api/internal/config"
	"github.com/biztime/api/internal/errs"
	"github.com/biztime/api/internal/handler"
	"github.com/biztime/api/internal/middleware"
	"github.com/biztime/api/internal/model"
	"github.com/biztime/api/internal/repository"
	"github.com/biztime/api/internal/router"
	"github.com/biztime/api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// newTestRouter wires the full middleware and routing stack around mock
// repositories, so tests exercise binding, validation, and the global
// error handler exactly as production requests do.
func newTestRouter(repos *repository.Repositories) *echo.Echo {
	log := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				Port:               "0",
				ReadTimeout:        5,
				WriteTimeout:       5,
				IdleTimeout:        30,
				CORSAllowedOrigins: []string{"*"},
			},
		},
		Logger: &log,
	}

	handlers := handler.NewHandlers(s, repos)
	middlewares := middleware.NewMiddlewares(s)

	return router.New(s, handlers, middlewares)
}

func doRequest(e *echo.Echo, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

// errorBody mirrors the wire shape written by the global error handler.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Status  int    `json:"status"`
		Errors  []struct {
			Field string `json:"field"`
			Error string `json:"error"`
		} `json:"errors"`
	} `json:"error"`
}

func assertErrorResponse(t *testing.T, rec *httptest.ResponseRecorder, wantStatus int) errorBody {
	t.Helper()
	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, wantStatus, rec.Body.String())
	}

	var body errorBody
	decodeJSON(t, rec, &body)

	if body.Error.Status != wantStatus {
		t.Errorf("error.status = %d, want %d", body.Error.Status, wantStatus)
	}
	if body.Error.Message == "" {
		t.Error("error.message is empty")
	}
	return body
}

func strPtr(s string) *string { return &s }

// mockCompanyRepo is an in-memory CompanyRepository that reproduces the
// error contract of the real repository.
type mockCompanyRepo struct {
	companies  map[string]model.Company
	invoices   map[string][]model.CompanyInvoice
	industries map[string][]string
}

func newMockCompanyRepo() *mockCompanyRepo {
	return &mockCompanyRepo{
		companies:  make(map[string]model.Company),
		invoices:   make(map[string][]model.CompanyInvoice),
		industries: make(map[string][]string),
	}
}

func (m *mockCompanyRepo) List(_ context.Context) ([]model.Company, error) {
	companies := make([]model.Company, 0, len(m.companies))
	for _, c := range m.companies {
		companies = append(companies, c)
	}
	return companies, nil
}

func (m *mockCompanyRepo) GetByCode(_ context.Context, code string) (*model.CompanyDetail, error) {
	company, ok := m.companies[code]
	if !ok {
		return nil, errs.NewNotFoundError(fmt.Sprintf("No company found with code: %s", code), nil)
	}

	detail := &model.CompanyDetail{
		Company:    company,
		Invoices:   []model.CompanyInvoice{},
		Industries: []string{},
	}
	detail.Invoices = append(detail.Invoices, m.invoices[code]...)
	detail.Industries = append(detail.Industries, m.industries[code]...)
	return detail, nil
}

func (m *mockCompanyRepo) Create(_ context.Context, code, name string, description *string) (*model.Company, error) {
	if _, ok := m.companies[code]; ok {
		return nil, errs.NewConflictError("Company code already exists", nil)
	}

	company := model.Company{Code: code, Name: name, Description: description}
	m.companies[code] = company
	return &company, nil
}

func (m *mockCompanyRepo) Update(_ context.Context, code, name string, description *string) (*model.Company, error) {
	if _, ok := m.companies[code]; !ok {
		return nil, errs.NewNotFoundError(fmt.Sprintf("Company not found with code: %s", code), nil)
	}

	company := model.Company{Code: code, Name: name, Description: description}
	m.companies[code] = company
	return &company, nil
}

func (m *mockCompanyRepo) Delete(_ context.Context, code string) error {
	if _, ok := m.companies[code]; !ok {
		return errs.NewNotFoundError(fmt.Sprintf("Company not found with code: %s", code), nil)
	}
	if len(m.invoices[code]) > 0 || len(m.industries[code]) > 0 {
		return errs.NewConflictError("Company cannot be deleted while invoices or industry associations reference it", nil)
	}

	delete(m.companies, code)
	return nil
}

// mockInvoiceRepo is an in-memory InvoiceRepository. It implements the
// paid/paid_date transition the real repository expresses in SQL.
type mockInvoiceRepo struct {
	nextID    int64
	invoices  map[int64]model.Invoice
	companies map[string]model.Company
}

func newMockInvoiceRepo() *mockInvoiceRepo {
	return &mockInvoiceRepo{
		nextID:    1,
		invoices:  make(map[int64]model.Invoice),
		companies: make(map[string]model.Company),
	}
}

func (m *mockInvoiceRepo) addCompany(c model.Company) {
	m.companies[c.Code] = c
}

func (m *mockInvoiceRepo) addInvoice(inv model.Invoice) model.Invoice {
	inv.ID = m.nextID
	m.nextID++
	m.invoices[inv.ID] = inv
	return inv
}

func (m *mockInvoiceRepo) List(_ context.Context) ([]model.Invoice, error) {
	invoices := make([]model.Invoice, 0, len(m.invoices))
	for _, inv := range m.invoices {
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (m *mockInvoiceRepo) GetByID(_ context.Context, id int64) (*model.InvoiceDetail, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, errs.NewNotFoundError(fmt.Sprintf("Invoice not found with id: %d", id), nil)
	}

	return &model.InvoiceDetail{
		ID:       inv.ID,
		Amt:      inv.Amt,
		Paid:     inv.Paid,
		AddDate:  inv.AddDate,
		PaidDate: inv.PaidDate,
		Company:  m.companies[inv.CompCode],
	}, nil
}

func (m *mockInvoiceRepo) Create(_ context.Context, compCode string, amt float64) (*model.Invoice, error) {
	if _, ok := m.companies[compCode]; !ok {
		return nil, errs.NewNotFoundError(fmt.Sprintf("No company found with code: %s", compCode), nil)
	}

	inv := m.addInvoice(model.Invoice{
		CompCode: compCode,
		Amt:      amt,
		Paid:     false,
		AddDate:  model.Today(),
	})
	return &inv, nil
}

func (m *mockInvoiceRepo) Update(_ context.Context, id int64, amt float64, paid *bool) (*model.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, errs.NewNotFoundError(fmt.Sprintf("Invoice not found with id: %d", id), nil)
	}

	inv.Amt = amt
	if paid != nil {
		inv.Paid = *paid
		if *paid {
			today := model.Today()
			inv.PaidDate = &today
		} else {
			inv.PaidDate = nil
		}
	}

	m.invoices[id] = inv
	return &inv, nil
}

func (m *mockInvoiceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.invoices[id]; !ok {
		return errs.NewNotFoundError(fmt.Sprintf("Invoice not found with id: %d", id), nil)
	}

	delete(m.invoices, id)
	return nil
}

// mockIndustryRepo is an in-memory IndustryRepository.
type mockIndustryRepo struct {
	industries   map[string]model.Industry
	companies    map[string]bool
	associations map[model.Association]bool
}

func newMockIndustryRepo() *mockIndustryRepo {
	return &mockIndustryRepo{
		industries:   make(map[string]model.Industry),
		companies:    make(map[string]bool),
		associations: make(map[model.Association]bool),
	}
}

func (m *mockIndustryRepo) List(_ context.Context) ([]model.IndustryWithCompanies, error) {
	industries := make([]model.IndustryWithCompanies, 0, len(m.industries))
	for _, ind := range m.industries {
		row := model.IndustryWithCompanies{
			Code:         ind.Code,
			Industry:     ind.Industry,
			CompanyCodes: []string{},
		}
		for assoc := range m.associations {
			if assoc.IndCode == ind.Code {
				row.CompanyCodes = append(row.CompanyCodes, assoc.CompCode)
			}
		}
		industries = append(industries, row)
	}
	return industries, nil
}

func (m *mockIndustryRepo) Create(_ context.Context, code, industry string) (*model.Industry, error) {
	if _, ok := m.industries[code]; ok {
		return nil, errs.NewConflictError("Industry code already exists", nil)
	}

	ind := model.Industry{Code: code, Industry: industry}
	m.industries[code] = ind
	return &ind, nil
}

func (m *mockIndustryRepo) Associate(_ context.Context, indCode, compCode string) (*model.Association, error) {
	if _, ok := m.industries[indCode]; !ok {
		return nil, errs.NewNotFoundError("Either the company or the industry does not exist", nil)
	}
	if !m.companies[compCode] {
		return nil, errs.NewNotFoundError("Either the company or the industry does not exist", nil)
	}

	assoc := model.Association{CompCode: compCode, IndCode: indCode}
	if m.associations[assoc] {
		return nil, errs.NewConflictError("Company is already associated with this industry", nil)
	}

	m.associations[assoc] = true
	return &assoc, nil
}

var _ repository.CompanyRepository = (*mockCompanyRepo)(nil)
var _ repository.InvoiceRepository = (*mockInvoiceRepo)(nil)
var _ repository.IndustryRepository = (*mockIndustryRepo)(nil)

// newTestRepos returns a repository container backed entirely by mocks.
func newTestRepos() (*repository.Repositories, *mockCompanyRepo, *mockInvoiceRepo, *mockIndustryRepo) {
	companies := newMockCompanyRepo()
	invoices := newMockInvoiceRepo()
	industries := newMockIndustryRepo()

	repos := &repository.Repositories{
		Companies:  companies,
		Invoices:   invoices,
		Industries: industries,
	}
	return repos, companies, invoices, industries
}

func TestRouteNotFoundUsesErrorEnvelope(t *testing.T) {
	repos, _, _, _ := newTestRepos()
	e := newTestRouter(repos)

	rec := doRequest(e, http.MethodGet, "/nope", nil)

	body := assertErrorResponse(t, rec, http.StatusNotFound)
	if body.Error.Message != "Route not found" {
		t.Errorf("message = %q, want %q", body.Error.Message, "Route not found")
	}
}
