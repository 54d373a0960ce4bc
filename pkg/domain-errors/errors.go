// Package domainerrors defines coded domain errors and their HTTP mapping.
// Services return these; the HTTP layer translates them into JSON envelopes
// via httputil.WriteError without inspecting error strings.
package domainerrors

import "net/http"

// Code is a stable, machine-readable error identifier. Codes are part of the
// API contract; descriptions are not.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	// CodeModuleLocked marks a refused progression transition: the requested
	// module's predecessor has not been completed. Not an exceptional
	// condition, just a rejected state change.
	CodeModuleLocked Code = "module_locked"
	CodeInternal     Code = "internal_error"
)

// DomainError carries a code and a human-readable description.
type DomainError struct {
	Code        Code
	Description string
}

func (e DomainError) Error() string {
	if e.Description == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Description
}

// New constructs a DomainError.
func New(code Code, description string) DomainError {
	return DomainError{Code: code, Description: description}
}

// ToHTTPStatus maps an error code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden, CodeModuleLocked:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf extracts the Code from err, or CodeInternal when err is not a
// DomainError.
func CodeOf(err error) Code {
	if de, ok := err.(DomainError); ok {
		return de.Code
	}
	return CodeInternal
}
