package domain

import "errors"

// Sentinel errors shared across the client. The gateway maps HTTP statuses
// onto these so callers can branch with errors.Is instead of inspecting
// status codes themselves.
var (
	// ErrMalformedToken indicates the stored bearer token could not be decoded.
	ErrMalformedToken = errors.New("malformed token")

	// ErrAuthRejected indicates the login endpoint refused the credentials.
	ErrAuthRejected = errors.New("invalid credentials")

	// ErrUnauthorized indicates a 401 on an authenticated call.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the server denied access to a resource (403).
	ErrForbidden = errors.New("access forbidden")

	// ErrNotFound indicates the requested resource does not exist (404).
	ErrNotFound = errors.New("not found")

	// ErrServer indicates the server failed or was unreachable (5xx / no response).
	ErrServer = errors.New("server error")

	// ErrRequestFailed covers remaining non-2xx statuses.
	ErrRequestFailed = errors.New("request failed")
)
