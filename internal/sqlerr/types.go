package sqlerr

import "fmt"

// Code classifies a database error by the kind of constraint it violated.
type Code int

const (
	// Other covers every SQLSTATE this package does not map explicitly.
	Other Code = iota

	// UniqueViolation is SQLSTATE 23505: duplicate primary key or unique value.
	UniqueViolation

	// ForeignKeyViolation is SQLSTATE 23503: a referenced row does not exist,
	// or a delete would orphan referencing rows.
	ForeignKeyViolation

	// NotNullViolation is SQLSTATE 23502.
	NotNullViolation

	// CheckViolation is SQLSTATE 23514.
	CheckViolation
)

// MapCode maps a Postgres SQLSTATE string to a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	default:
		return Other
	}
}

// Severity mirrors the severity field of a Postgres error response.
type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
	SeverityPanic
	SeverityUnknown
)

// MapSeverity maps the Postgres severity string to a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	default:
		return SeverityUnknown
	}
}

// Error is a normalized database error. It keeps the original SQLSTATE
// and constraint metadata so callers can branch on the violation kind
// without depending on the driver error type.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("database error %s: %s", e.DatabaseCode, e.Message)
}

// Unwrap exposes the original driver error for errors.As chains.
func (e *Error) Unwrap() error {
	return e.driverErr
}
