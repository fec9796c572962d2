// Package repository handles all interactions with the database.
//
// It contains the raw SQL statements for the billing schema and the
// methods to fetch, persist, update, and delete rows, abstracting SQL
// away from the HTTP layer. Constraint violations are translated here:
// each repository branches on the violation kind (via sqlerr.ErrCode)
// to attach a domain-specific message, and falls back to
// sqlerr.HandleError for everything else.
package repository
