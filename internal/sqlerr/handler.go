package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/biztime/api/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the violation Code for a given error.
//
// It unwraps both *sqlerr.Error and raw *pgconn.PgError, so repositories
// can branch on the violation kind before (or instead of) calling
// HandleError:
//
//	if sqlerr.ErrCode(err) == sqlerr.UniqueViolation { ... }
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}

	return Other
}

// ConvertPgError converts a raw pgconn.PgError into a normalized *Error,
// mapping SQLSTATE and severity into the package enums.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates a machine-readable application error code
// from the violated table and violation type.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	companies + UniqueViolation => COMPANY_ALREADY_EXISTS
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "record"
	}

	domain := strings.ToUpper(singularize(tableName))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces the client-facing message for a
// constraint violation. It phrases the message around the entity the
// constraint belongs to rather than the raw constraint name.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName, sqlErr.ConstraintName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", strings.ToLower(entityName))

	case UniqueViolation:
		// "identifier" is replaced by the column name when it can be
		// inferred from the constraint name.
		return fmt.Sprintf("A %s with this identifier already exists", strings.ToLower(entityName))

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// fkEntities maps foreign-key column names of the billing schema to the
// entity they reference. Used to phrase foreign-key violations around
// the missing parent row instead of the violated child table.
var fkEntities = map[string]string{
	"comp_code": "company",
	"ind_code":  "industry",
}

// getEntityName infers an entity name from table/column/constraint data.
//
// Priority rules:
//  1. A known foreign-key column (comp_code, ind_code) names the
//     referenced entity directly.
//  2. A constraint named <table>_<column>_fkey is parsed the same way.
//  3. Otherwise the singularized table name is used.
//  4. Fallback: "record".
func getEntityName(tableName, columnName, constraintName string) string {
	if entity, ok := fkEntities[strings.ToLower(columnName)]; ok {
		return entity
	}

	if constraintName != "" {
		if column, found := strings.CutSuffix(constraintName, "_fkey"); found {
			column = strings.TrimPrefix(column, tableName+"_")
			if entity, ok := fkEntities[column]; ok {
				return entity
			}
		}
	}

	if tableName != "" {
		return singularize(tableName)
	}

	return "record"
}

// singularize reduces a plural table name to its entity name.
// Handles the -ies plural used by the billing schema (companies,
// industries) as well as a plain trailing s.
func singularize(name string) string {
	lower := strings.ToLower(name)
	if stem, found := strings.CutSuffix(lower, "ies"); found && stem != "" {
		return stem + "y"
	}
	if stem, found := strings.CutSuffix(lower, "s"); found && stem != "" {
		return stem
	}
	return lower
}

// humanizeText converts snake_case identifiers into Title Case,
// e.g. "paid_date" -> "Paid Date".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// uniqueConstraintColumn matches <table>_<column>_key / _ukey / _pkey.
var uniqueConstraintColumn = regexp.MustCompile(`_([^_]+)_(?:key|ukey|pkey)$`)

// extractColumnForUniqueViolation tries to infer the column name from a
// unique constraint name.
//
// It supports the conventions:
//
//  1. "unique_<table>_<column>", e.g. unique_companies_name -> "name"
//  2. "<table>_<column>_key" (also _ukey/_pkey), e.g. industries_industry_key -> "industry"
//  3. "<table>_pkey": the schema keys every table by "code".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueConstraintColumn.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	if strings.HasSuffix(constraintName, "_pkey") {
		return "code"
	}

	return ""
}

// HandleError converts a low-level database error into an application error.
//
// Mapping:
//   - already *errs.HTTPError: returned unchanged (no double wrapping)
//   - unique violation: 409 Conflict
//   - foreign-key violation: 404 Not Found (the referenced row is treated
//     as a caller input error, not an integrity failure)
//   - not-null / check violation: 400 Bad Request
//   - pgx.ErrNoRows / sql.ErrNoRows: 404 Not Found
//   - anything else: 500 with a generic message
//
// Repositories call this after a failed database operation; callers that
// need a more specific message branch on ErrCode first and fall back to
// HandleError for the rest.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		sqlErr := ConvertPgError(pgErr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case UniqueViolation:
			if columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName); columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", strings.ToLower(humanizeText(columnName)))
			}
			return errs.NewConflictError(userMessage, &errorCode)

		case ForeignKeyViolation:
			return errs.NewNotFoundError(userMessage, &errorCode)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, &errorCode, fieldErrors)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, &errorCode, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", nil)
	}

	return errs.NewInternalServerError()
}
