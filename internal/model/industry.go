package model

// Industry is a row in the industries table.
type Industry struct {
	Code     string `json:"code"`
	Industry string `json:"industry"`
}

// IndustryWithCompanies is an industry plus the codes of all companies
// currently associated with it. CompanyCodes is always non-nil; an
// industry with no associations carries an empty slice.
type IndustryWithCompanies struct {
	Code         string   `json:"code"`
	Industry     string   `json:"industry"`
	CompanyCodes []string `json:"company_codes"`
}

// Association is a row in the companies_industries join table.
type Association struct {
	CompCode string `json:"comp_code"`
	IndCode  string `json:"ind_code"`
}
