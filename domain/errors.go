package domain

import "errors"

// Sentinel errors shared by the business and gateway layers. Handlers map them
// to HTTP statuses with errors.Is; anything unmatched surfaces as a generic
// internal failure.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
