// Package logger configures structured JSON logging on top of log/slog.
//
// Setup installs a handler at the level named in the server configuration
// and sets it as the process default. The context helpers carry a
// request-scoped logger through the call chain, so handlers and services
// log with the request's trace ID without threading a logger through
// every signature.
package logger
