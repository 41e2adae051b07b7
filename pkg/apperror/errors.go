package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrBadRequest          = errors.New("bad request")
	ErrInternal            = errors.New("internal server error")
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateEntity     = errors.New("entity already exists")
	ErrHasDependents       = errors.New("record is referenced by other records")
	ErrInvalidUpload       = errors.New("invalid upload")
	ErrAlreadyPaid         = errors.New("current billing cycle is already paid")
	ErrPaymentNotConfirmed = errors.New("payment has not been confirmed by the gateway")
	ErrExternalService     = errors.New("external service failure")
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrDuplicateEntity), errors.Is(err, ErrHasDependents), errors.Is(err, ErrAlreadyPaid):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidUpload):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrPaymentNotConfirmed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrExternalService):
		return http.StatusBadGateway
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	}
	// Default to internal server error
	return http.StatusInternalServerError
}
