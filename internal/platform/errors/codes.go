// Package errors provides structured error handling for the admin console.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// API errors
	CodeTransport       Code = "TRANSPORT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeInvalidResponse Code = "INVALID_RESPONSE"

	// Client-side validation; the request is never sent.
	CodeValidation Code = "VALIDATION"

	// Session errors
	CodeSessionExpired   Code = "SESSION_EXPIRED"
	CodeRoleNotPermitted Code = "ROLE_NOT_PERMITTED"
)

// HTTPStatus maps a code to the status the console answers with.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized, CodeSessionExpired:
		return http.StatusUnauthorized
	case CodeRoleNotPermitted:
		return http.StatusForbidden
	case CodeTransport, CodeInvalidResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
