package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrListingNotFound  = errors.New("listing not found")
	ErrThreadNotFound   = errors.New("thread not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrRecipientNoEmail = errors.New("recipient has no email address")
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrValidation       = errors.New("validation failed")
	ErrExternalService  = errors.New("external service error")
)

type APIError struct {
	Message string `json:"error"`
	Code    int    `json:"code"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(message string, code int) *APIError {
	return &APIError{
		Message: message,
		Code:    code,
	}
}

func HTTPStatusFromError(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrListingNotFound),
		errors.Is(err, ErrThreadNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrRecipientNoEmail):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
