// Package api defines the JSON envelopes shared by every HTTP handler.
package api

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// DataResponse wraps a successful payload under "data".
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// Common error messages.
const (
	MsgInvalidBody  = "invalid request body"
	MsgInvalidID    = "invalid id"
	MsgServerError  = "Server error"
	MsgUnauthorized = "Unauthorized"
)
