// Package handlers defines the HTTP-layer error codes used across all API
// endpoints.
//
// These symbolic constants are mapped to HTTP responses via the fail()
// helper in this package. They give clients a stable, machine-readable
// error taxonomy supplementing the human-readable message. Codes are
// lowercase snake_case; generic codes mirror common HTTP status semantics.
//
// Codes used by the catalog API:
//   - unauthorized (401): credential missing or mismatched, raised before
//     any business logic executes
//   - validation_error (400): malformed or incomplete payload, raised
//     before the store is touched
//   - not_found (404): referenced id absent at lookup time
//   - internal_error (500): fallback for anything else
package handlers

const (
	ErrCodeValidation       = "validation_error"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
