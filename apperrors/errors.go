// Package apperrors defines the failure kinds shared by the domain operations
// and both transports.
package apperrors

import (
	"errors"
	"fmt"
)

// NotFoundError reports a referenced entity id that does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s #%d not found", e.Entity, e.ID)
}

// ValidationError reports a malformed value supplied by the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// AccessDeniedError reports an authorization denial. Authenticated is false
// when the caller presented no identity at all.
type AccessDeniedError struct {
	Authenticated bool
	Reason        string
}

func (e *AccessDeniedError) Error() string {
	if e.Reason == "" {
		return "access denied"
	}
	return "access denied: " + e.Reason
}

func NotFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func AccessDenied(authenticated bool, reason string) error {
	return &AccessDeniedError{Authenticated: authenticated, Reason: reason}
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsAccessDenied(err error) bool {
	var target *AccessDeniedError
	return errors.As(err, &target)
}
