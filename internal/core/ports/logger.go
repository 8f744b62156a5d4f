package ports

import "io"

// Logger is the application-wide logging abstraction.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info logs an informational message with optional key/value pairs.
	Info(msg string, args ...any)

	// Warn logs a warning message with optional key/value pairs.
	Warn(msg string, args ...any)

	// Error logs an error. Structured fields attached to the error are
	// rendered by the handler.
	Error(err error)

	// SetOutput redirects log output. Used by tests.
	SetOutput(w io.Writer)

	// SetJSON switches between JSON and pretty output.
	SetJSON(enable bool)
}
