package models

import "errors"

// Sentinel errors for business-rule failures. Services wrap these with
// context; handlers map them to HTTP status codes at the boundary.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("invalid input")
)
