// Package observability provides structured logging for the dashboard API.
//
// Loggers are zap-based. Request-scoped fields (request id, role, subject)
// are attached by the HTTP middleware through FromContext.
package observability
