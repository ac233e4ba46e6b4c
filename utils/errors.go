package utils

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a failed operation so the HTTP layer can pick a
// status code without string-matching messages.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindAuthorization
	KindNotFound
	KindStateConflict
	KindUpstream
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationError(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

func AuthorizationError(msg string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: msg}
}

func NotFoundError(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

// StateConflictError covers illegal status transitions, duplicate
// assignments/payments and cart/restaurant mismatches.
func StateConflictError(msg string) *AppError {
	return &AppError{Kind: KindStateConflict, Message: msg}
}

func UpstreamError(err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: "upstream failure", Err: err}
}

// HTTPStatus maps an error to a response code. Unclassified errors are
// treated as server errors.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation, KindStateConflict:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
