// Package sqlerr translates database driver errors into the application
// error taxonomy.
//
// It parses the SQLSTATE codes carried by pgconn.PgError and converts
// constraint violations into domain-meaningful HTTP errors: unique
// violations become conflicts, foreign-key violations become not-found
// (the referenced row does not exist), and anything unexpected collapses
// to a generic internal error so driver details never reach a client.
package sqlerr
