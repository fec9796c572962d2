package model

// Invoice is a row in the invoices table.
//
// PaidDate is non-nil exactly when Paid is true. The transition is
// enforced by the invoice update statement, not by application checks.
type Invoice struct {
	ID       int64   `json:"id"`
	CompCode string  `json:"comp_code"`
	Amt      float64 `json:"amt"`
	Paid     bool    `json:"paid"`
	AddDate  Date    `json:"add_date"`
	PaidDate *Date   `json:"paid_date"`
}

// InvoiceDetail is an invoice joined with its owning company.
type InvoiceDetail struct {
	ID       int64   `json:"id"`
	Amt      float64 `json:"amt"`
	Paid     bool    `json:"paid"`
	AddDate  Date    `json:"add_date"`
	PaidDate *Date   `json:"paid_date"`
	Company  Company `json:"company"`
}
