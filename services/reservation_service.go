package services

import (
	"context"
	"log/slog"

	"travelapp-backend/apperrors"
	"travelapp-backend/models"
	"travelapp-backend/policy"
	"travelapp-backend/repository"
)

// CreateReservationInput mirrors the create operation. Nil fields take their
// defaults: today, zero counts, confirmed and active.
type CreateReservationInput struct {
	UserID            uint
	DateOfReservation *models.Date
	AmountOfChildren  *int
	AmountOfAdults    *int
	IsConfirmed       *bool
	IsActive          *bool
}

// ReservationPatch lists the fields a reservation update may change. The owner
// is not patchable.
type ReservationPatch struct {
	DateOfReservation *models.Date
	AmountOfChildren  *int
	AmountOfAdults    *int
	IsConfirmed       *bool
	IsActive          *bool
}

func (p ReservationPatch) apply(r *models.Reservation) {
	if p.DateOfReservation != nil {
		r.DateOfReservation = *p.DateOfReservation
	}
	if p.AmountOfChildren != nil {
		r.AmountOfChildren = *p.AmountOfChildren
	}
	if p.AmountOfAdults != nil {
		r.AmountOfAdults = *p.AmountOfAdults
	}
	if p.IsConfirmed != nil {
		r.IsConfirmed = *p.IsConfirmed
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
}

type ReservationService struct {
	reservations *repository.ReservationRepository
	users        *repository.UserRepository
	logger       *slog.Logger
	clock        clock
}

func NewReservationService(reservations *repository.ReservationRepository, users *repository.UserRepository, logger *slog.Logger) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		users:        users,
		logger:       resolveLogger(logger).With("module", "reservation", "layer", "service"),
	}
}

func (s *ReservationService) Create(ctx context.Context, caller policy.Caller, in CreateReservationInput) (*models.Reservation, error) {
	if err := policy.Authorize(caller, policy.OpCreate, policy.EntityReservation, nil); err != nil {
		return nil, err
	}
	owner, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		UserID:            owner.ID,
		User:              owner,
		DateOfReservation: models.NewDate(s.clock.now()),
		AmountOfChildren:  intOr(in.AmountOfChildren, 0),
		AmountOfAdults:    intOr(in.AmountOfAdults, 0),
		IsConfirmed:       boolOr(in.IsConfirmed, true),
		IsActive:          boolOr(in.IsActive, true),
	}
	if in.DateOfReservation != nil && !in.DateOfReservation.IsZero() {
		reservation.DateOfReservation = *in.DateOfReservation
	}
	if err := reservation.Validate(); err != nil {
		return nil, err
	}
	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, err
	}

	s.logger.Info("reservation created", "event", "reservation.create", "reservation_id", reservation.ID, "user_id", owner.ID)
	return reservation, nil
}

// Get loads a reservation the caller owns, or any reservation for administrators.
func (s *ReservationService) Get(ctx context.Context, caller policy.Caller, id uint) (*models.Reservation, error) {
	return s.load(ctx, caller, policy.OpRead, id)
}

func (s *ReservationService) Update(ctx context.Context, caller policy.Caller, id uint, patch ReservationPatch) (*models.Reservation, error) {
	reservation, err := s.load(ctx, caller, policy.OpUpdate, id)
	if err != nil {
		return nil, err
	}
	patch.apply(reservation)
	if err := reservation.Validate(); err != nil {
		return nil, err
	}
	if err := s.reservations.Save(ctx, reservation); err != nil {
		return nil, err
	}

	s.logger.Info("reservation updated", "event", "reservation.update", "reservation_id", reservation.ID)
	return reservation, nil
}

// Delete reports false without an error when the reservation does not exist.
func (s *ReservationService) Delete(ctx context.Context, caller policy.Caller, id uint) (bool, error) {
	reservation, err := s.load(ctx, caller, policy.OpDelete, id)
	if apperrors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	deleted, err := s.reservations.Delete(ctx, reservation.ID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("reservation deleted", "event", "reservation.delete", "reservation_id", id)
	}
	return deleted, nil
}

// List returns every reservation, not only the caller's own.
func (s *ReservationService) List(ctx context.Context, caller policy.Caller, filter repository.ReservationFilter, opts repository.ListOptions) (repository.ListResult[models.Reservation], error) {
	if err := policy.Authorize(caller, policy.OpList, policy.EntityReservation, nil); err != nil {
		return repository.ListResult[models.Reservation]{}, err
	}
	return s.reservations.List(ctx, filter, opts)
}

// load runs the collection-level check before touching storage so anonymous
// callers never learn whether an id exists, then the ownership check.
func (s *ReservationService) load(ctx context.Context, caller policy.Caller, op policy.Operation, id uint) (*models.Reservation, error) {
	if err := policy.Authorize(caller, op, policy.EntityReservation, nil); err != nil {
		return nil, err
	}
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(caller, op, policy.EntityReservation, reservation); err != nil {
		s.logger.Warn("reservation access denied", "event", "reservation.denied", "reservation_id", id, "user_id", caller.UserID, "operation", op.String())
		return nil, err
	}
	return reservation, nil
}
