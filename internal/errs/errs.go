// Package errs defines the application error taxonomy and utilities.
//
// Every error that reaches a client is a *HTTPError carrying a
// machine-readable code, a human-readable message, and the HTTP status
// to respond with. Repositories and handlers build these with the
// constructors in this package; the global error handler serializes
// them into the uniform error envelope.
package errs
