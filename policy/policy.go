// Package policy decides whether a caller may perform an operation on an
// entity. It is independent of the transport that asks.
package policy

import (
	"fmt"

	"travelapp-backend/apperrors"
)

// Caller is the identity behind a request. The zero value is an anonymous caller.
type Caller struct {
	UserID        uint
	IsStaff       bool
	Authenticated bool
}

// Anonymous is the caller of a request without credentials.
var Anonymous = Caller{}

func User(id uint, isStaff bool) Caller {
	return Caller{UserID: id, IsStaff: isStaff, Authenticated: true}
}

// IsAdmin reports whether the caller carries administrator privileges.
func (c Caller) IsAdmin() bool {
	return c.Authenticated && c.IsStaff
}

type Operation int

const (
	OpList Operation = iota + 1
	OpCreate
	OpRead
	OpUpdate
	OpDelete
)

func (o Operation) String() string {
	switch o {
	case OpList:
		return "list"
	case OpCreate:
		return "create"
	case OpRead:
		return "read"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("operation(%d)", int(o))
	}
}

// instanceLevel reports whether the operation addresses a single row.
func (o Operation) instanceLevel() bool {
	return o == OpRead || o == OpUpdate || o == OpDelete
}

type Entity int

const (
	EntityUser Entity = iota + 1
	EntityReservation
	EntityTour
	EntityTourReservation
	EntityRegistration
)

func (e Entity) String() string {
	switch e {
	case EntityUser:
		return "user"
	case EntityReservation:
		return "reservation"
	case EntityTour:
		return "tour"
	case EntityTourReservation:
		return "tour reservation"
	case EntityRegistration:
		return "registration"
	default:
		return fmt.Sprintf("entity(%d)", int(e))
	}
}

// Owned is implemented by instances subject to ownership checks.
type Owned interface {
	OwnerID() uint
}

// Authorize returns nil when caller may perform op on entity, or an
// *apperrors.AccessDeniedError otherwise. instance is the addressed row for
// instance-level operations and may be nil for collection-level checks.
func Authorize(caller Caller, op Operation, entity Entity, instance Owned) error {
	switch entity {
	case EntityUser:
		return requireAdmin(caller, op, entity)

	case EntityRegistration:
		if op == OpCreate {
			return nil
		}
		return deny(caller, op, entity)

	case EntityTour:
		switch op {
		case OpList, OpRead:
			return nil
		default:
			return requireAdmin(caller, op, entity)
		}

	case EntityReservation:
		if err := requireAuthenticated(caller); err != nil {
			return err
		}
		if !op.instanceLevel() || instance == nil || caller.IsAdmin() {
			return nil
		}
		if instance.OwnerID() == caller.UserID {
			return nil
		}
		return apperrors.AccessDenied(true, "only the owner or an administrator may "+op.String()+" this reservation")

	case EntityTourReservation:
		// No ownership check on links, unlike reservations.
		return requireAuthenticated(caller)
	}
	return deny(caller, op, entity)
}

// Allowed is the boolean form of Authorize.
func Allowed(caller Caller, op Operation, entity Entity, instance Owned) bool {
	return Authorize(caller, op, entity, instance) == nil
}

func requireAuthenticated(caller Caller) error {
	if !caller.Authenticated {
		return apperrors.AccessDenied(false, "authentication credentials were not provided")
	}
	return nil
}

func requireAdmin(caller Caller, op Operation, entity Entity) error {
	if err := requireAuthenticated(caller); err != nil {
		return err
	}
	if !caller.IsStaff {
		return apperrors.AccessDenied(true, fmt.Sprintf("administrator privileges required to %s %s", op, entity))
	}
	return nil
}

func deny(caller Caller, op Operation, entity Entity) error {
	return apperrors.AccessDenied(caller.Authenticated, fmt.Sprintf("%s %s is not permitted", op, entity))
}
