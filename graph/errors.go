package graph

import (
	"errors"

	"travelapp-backend/apperrors"
)

// codedError carries the error kind to clients in the GraphQL extensions.
type codedError struct {
	err  error
	code string
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

func (e *codedError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	var denied *apperrors.AccessDeniedError
	switch {
	case apperrors.IsValidation(err):
		return &codedError{err: err, code: "BAD_USER_INPUT"}
	case apperrors.IsNotFound(err):
		return &codedError{err: err, code: "NOT_FOUND"}
	case errors.As(err, &denied):
		if denied.Authenticated {
			return &codedError{err: err, code: "FORBIDDEN"}
		}
		return &codedError{err: err, code: "UNAUTHENTICATED"}
	}
	return &codedError{err: errors.New("internal server error"), code: "INTERNAL_SERVER_ERROR"}
}
