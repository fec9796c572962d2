// Package handler is the entry point for business logic after the
// router.
//
// It parses requests, handles input validation using the validation
// package, calls the matching repository operation, and shapes the JSON
// response envelope. Errors are returned, never written directly; the
// global error handler owns the error wire format.
package handler
