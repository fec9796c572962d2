package model

// Company is a row in the companies table. Code is the primary key,
// either caller-supplied or slugified from Name at creation time.
type Company struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CompanyDetail is a company together with its invoices and the names of
// the industries it belongs to. Invoices and Industries are always non-nil
// so they serialize as [] rather than null.
type CompanyDetail struct {
	Company
	Invoices   []CompanyInvoice `json:"invoices"`
	Industries []string         `json:"industries"`
}

// CompanyInvoice is the invoice shape embedded in a company detail
// response. The owning company code is implied by the parent.
type CompanyInvoice struct {
	ID       int64   `json:"id"`
	Amt      float64 `json:"amt"`
	Paid     bool    `json:"paid"`
	AddDate  Date    `json:"add_date"`
	PaidDate *Date   `json:"paid_date"`
}
