// Package middleware wires the HTTP-level cross-cutting concerns:
// CORS, panic recovery, secure headers, request IDs, request-scoped
// logging, per-request log lines, and the global error handler that
// turns every error into the uniform response envelope.
package middleware
