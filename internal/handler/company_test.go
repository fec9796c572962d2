package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/biztime/api/internal/model"
)

func TestListCompanies(t *testing.T) {
	repos, companies, _, _ := newTestRepos()
	companies.companies["apple"] = model.Company{Code: "apple", Name: "Apple"}
	companies.companies["ibm"] = model.Company{Code: "ibm", Name: "IBM", Description: strPtr("Big blue")}

	e := newTestRouter(repos)
	rec := doRequest(e, http.MethodGet, "/companies", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		Companies []model.Company `json:"companies"`
	}
	decodeJSON(t, rec, &body)

	if len(body.Companies) != 2 {
		t.Fatalf("got %d companies, want 2", len(body.Companies))
	}

	byCode := make(map[string]model.Company, len(body.Companies))
	for _, c := range body.Companies {
		byCode[c.Code] = c
	}
	if byCode["apple"].Name != "Apple" {
		t.Errorf("apple name = %q, want Apple", byCode["apple"].Name)
	}
	if byCode["ibm"].Description == nil || *byCode["ibm"].Description != "Big blue" {
		t.Errorf("ibm description = %v, want Big blue", byCode["ibm"].Description)
	}
}

func TestListCompaniesEmpty(t *testing.T) {
	repos, _, _, _ := newTestRepos()
	e := newTestRouter(repos)

	rec := doRequest(e, http.MethodGet, "/companies", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]json.RawMessage
	decodeJSON(t, rec, &body)
	if string(body["companies"]) != "[]" {
		t.Errorf("companies = %s, want []", body["companies"])
	}
}

func TestGetCompany(t *testing.T) {
	repos, companies, _, _ := newTestRepos()
	companies.companies["apple"] = model.Company{Code: "apple", Name: "Apple", Description: strPtr("Maker of OSX")}
	companies.invoices["apple"] = []model.CompanyInvoice{
		{ID: 1, Amt: 100, Paid: false, AddDate: model.Today()},
	}
	companies.industries["apple"] = []string{"Technology"}

	e := newTestRouter(repos)
	rec := doRequest(e, http.MethodGet, "/companies/apple", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		Company struct {
			Code       string   `json:"code"`
			Name       string   `json:"name"`
			Invoices   []any    `json:"invoices"`
			Industries []string `json:"industries"`
		} `json:"company"`
	}
	decodeJSON(t, rec, &body)

	if body.Company.Code != "apple" {
		t.Errorf("code = %q, want apple", body.Company.Code)
	}
	if len(body.Company.Invoices) != 1 {
		t.Errorf("got %d invoices, want 1", len(body.Company.Invoices))
	}
	if len(body.Company.Industries) != 1 || body.Company.Industries[0] != "Technology" {
		t.Errorf("industries = %v, want [Technology]", body.Company.Industries)
	}
}

func TestGetCompanyEmptyRelationsSerializeAsArrays(t *testing.T) {
	repos, companies, _, _ := newTestRepos()
	companies.companies["solo"] = model.Company{Code: "solo", Name: "Solo Inc"}

	e := newTestRouter(repos)
	rec := doRequest(e, http.MethodGet, "/companies/solo", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Company map[string]json.RawMessage `json:"company"`
	}
	decodeJSON(t, rec, &body)

	// A company with no relations must carry empty arrays, never null.
	if string(body.Company["invoices"]) != "[]" {
		t.Errorf("invoices = %s, want []", body.Company["invoices"])
	}
	if string(body.Company["industries"]) != "[]" {
		t.Errorf("industries = %s, want []", body.Company["industries"])
	}
}

func TestGetCompanyNotFound(t *testing.T) {
	repos, _, _, _ := newTestRepos()
	e := newTestRouter(repos)

	rec := doRequest(e, http.MethodGet, "/companies/ghost", nil)

	assertErrorResponse(t, rec, http.StatusNotFound)
}

func TestCreateCompany(t *testing.T) {
	repos, _, _, _ := newTestRepos()
	e := newTestRouter(repos)

	rec := doRequest(e, http.MethodPost, "/companies", map[string]any{
		"code": "ibm",
		"name": "IBM",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var body struct {
		Company map[string]json.RawMessage `json:"company"`
	}
	decodeJSON(t, rec, &body)

	if string(body.Company["code"]) != `"ibm"` {
		t.Errorf("code = %s, want ibm", body.Company["code"])
	}
	if string(body.Company["description"]) != "null" {
		t.Errorf("description = %s, want null", body.Company["description"])
	}
}

func TestCreateCompanySlugifiesMissingCode(t *testing.T) {
	repos, _, _, _ := newTestRepos()
	e := newTestRouter(repos)

	rec := doRequest(e, http.MethodPost, "/companies", map[string]any{
		"name": "IBM Corp",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var body struct {
		Company model.Company `json:"company"`
	}
	decodeJSON(t, rec, &body)

	if body.Company.Code != "ibm-corp" {
		t.Errorf("code = %q, want ibm-corp", body.Company.Code)
	}
}

func TestCreateCompanyMissingName(t *testing.T) {
	repos, _, _, _ := newTestRepos()
	e := newTestRouter(repos)

	rec := doRequest(e, http.MethodPost, "/companies", map[string]any{
		"code": "ibm",
	})

	body := assertErrorResponse(t, rec, http.StatusBadRequest)
	if len(body.Error.Errors) != 1 || body.Error.Errors[0].Field != "name" {
		t.Errorf("field errors = %+v, want single entry for name", body.Error.Errors)
	}
}

func TestCreateCompanyDuplicateCode(t *testing.T) {
	repos, companies, _, _ := newTestRepos()
	companies.companies["ibm"] = model.Company{Code: "ibm", Name: "IBM"}

	e := newTestRouter(repos)
	rec := doRequest(e, http.MethodPost, "/companies", map[string]any{
		"code": "ibm",
		"name": "International Business Machines",
	})

	assertErrorResponse(t, rec, http.StatusConflict)
}

func TestUpdateCompany(t *testing.T) {
	repos, companies, _, _ := newTestRepos()
	companies.companies["apple"] = model.Company{Code: "apple", Name: "Apple"}

	e := newTestRouter(repos)
	rec := doRequest(e, http.MethodPut, "/companies/apple", map[string]any{
		"name":        "Apple Computer",
		"description": "Maker of OSX",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		Company model.Company `json:"company"`
	}
	decodeJSON(t, rec, &body)

	if body.Company.Name != "Apple Computer" {
		t.Errorf("name = %q, want Apple Computer", body.Company.Name)
	}
	if body.Company.Description == nil || *body.Company.Description != "Maker of OSX" {
		t.Errorf("description = %v, want Maker of OSX", body.Company.Description)
	}
}

func TestUpdateCompanyNotFound(t *testing.T) {
	repos, _, _, _ := newTestRepos()
	e := newTestRouter(repos)

	rec := doRequest(e, http.MethodPut, "/companies/ghost", map[string]any{
		"name": "Ghost Corp",
	})

	assertErrorResponse(t, rec, http.StatusNotFound)
}

func TestUpdateCompanyMissingName(t *testing.T) {
	repos, companies, _, _ := newTestRepos()
	companies.companies["apple"] = model.Company{Code: "apple", Name: "Apple"}

	e := newTestRouter(repos)
	rec := doRequest(e, http.MethodPut, "/companies/apple", map[string]any{})

	assertErrorResponse(t, rec, http.StatusBadRequest)
}

func TestDeleteCompany(t *testing.T) {
	repos, companies, _, _ := newTestRepos()
	companies.companies["apple"] = model.Company{Code: "apple", Name: "Apple"}

	e := newTestRouter(repos)
	rec := doRequest(e, http.MethodDelete, "/companies/apple", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var body struct {
		Status string `json:"status"`
	}
	decodeJSON(t, rec, &body)
	if body.Status != "deleted" {
		t.Errorf("status = %q, want deleted", body.Status)
	}
	if _, ok := companies.companies["apple"]; ok {
		t.Error("company still present after delete")
	}
}

func TestDeleteCompanyNotFound(t *testing.T) {
	repos, _, _, _ := newTestRepos()
	e := newTestRouter(repos)

	rec := doRequest(e, http.MethodDelete, "/companies/ghost", nil)

	assertErrorResponse(t, rec, http.StatusNotFound)
}

func TestDeleteCompanyWithInvoicesConflicts(t *testing.T) {
	repos, companies, _, _ := newTestRepos()
	companies.companies["apple"] = model.Company{Code: "apple", Name: "Apple"}
	companies.invoices["apple"] = []model.CompanyInvoice{
		{ID: 1, Amt: 100, AddDate: model.Today()},
	}

	e := newTestRouter(repos)
	rec := doRequest(e, http.MethodDelete, "/companies/apple", nil)

	assertErrorResponse(t, rec, http.StatusConflict)
	if _, ok := companies.companies["apple"]; !ok {
		t.Error("company removed despite referencing invoices")
	}
}
