// Package logging provides slog helpers for consistent structured logging.
//
// It defines the attribute keys used across the codebase and small
// constructors for common attributes so call sites stay uniform. Email
// addresses are anonymized before logging to avoid leaking PII into logs.
package logging
