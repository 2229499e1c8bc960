package services

import (
	"context"
	"log/slog"

	"travelapp-backend/models"
	"travelapp-backend/policy"
	"travelapp-backend/repository"
)

type CreateTourReservationInput struct {
	ReservationID  uint
	TourID         uint
	IsPriceReduced *bool
	IsActive       *bool
}

// TourReservationPatch lists the patchable link fields. Both parents are fixed.
type TourReservationPatch struct {
	IsPriceReduced *bool
	IsActive       *bool
}

// TourReservationService manages links. Any authenticated caller may touch any
// link; there is no ownership check here.
type TourReservationService struct {
	links        *repository.TourReservationRepository
	reservations *repository.ReservationRepository
	tours        *repository.TourRepository
	logger       *slog.Logger
}

func NewTourReservationService(links *repository.TourReservationRepository, reservations *repository.ReservationRepository, tours *repository.TourRepository, logger *slog.Logger) *TourReservationService {
	return &TourReservationService{
		links:        links,
		reservations: reservations,
		tours:        tours,
		logger:       resolveLogger(logger).With("module", "tour_reservation", "layer", "service"),
	}
}

func (s *TourReservationService) Create(ctx context.Context, caller policy.Caller, in CreateTourReservationInput) (*models.TourReservation, error) {
	if err := policy.Authorize(caller, policy.OpCreate, policy.EntityTourReservation, nil); err != nil {
		return nil, err
	}
	reservation, err := s.reservations.GetByID(ctx, in.ReservationID)
	if err != nil {
		return nil, err
	}
	tour, err := s.tours.GetByID(ctx, in.TourID)
	if err != nil {
		return nil, err
	}

	link := &models.TourReservation{
		ReservationID:  reservation.ID,
		Reservation:    reservation,
		TourID:         tour.ID,
		Tour:           tour,
		IsPriceReduced: boolOr(in.IsPriceReduced, false),
		IsActive:       boolOr(in.IsActive, true),
	}
	if err := s.links.Create(ctx, link); err != nil {
		return nil, err
	}

	s.logger.Info("tour reservation created", "event", "tour_reservation.create", "link", link.String())
	return link, nil
}

func (s *TourReservationService) Get(ctx context.Context, caller policy.Caller, id uint) (*models.TourReservation, error) {
	if err := policy.Authorize(caller, policy.OpRead, policy.EntityTourReservation, nil); err != nil {
		return nil, err
	}
	return s.links.GetByID(ctx, id)
}

func (s *TourReservationService) Update(ctx context.Context, caller policy.Caller, id uint, patch TourReservationPatch) (*models.TourReservation, error) {
	if err := policy.Authorize(caller, policy.OpUpdate, policy.EntityTourReservation, nil); err != nil {
		return nil, err
	}
	link, err := s.links.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsPriceReduced != nil {
		link.IsPriceReduced = *patch.IsPriceReduced
	}
	if patch.IsActive != nil {
		link.IsActive = *patch.IsActive
	}
	if err := s.links.Save(ctx, link); err != nil {
		return nil, err
	}

	s.logger.Info("tour reservation updated", "event", "tour_reservation.update", "tour_reservation_id", link.ID)
	return link, nil
}

// Delete reports false without an error when the link does not exist.
func (s *TourReservationService) Delete(ctx context.Context, caller policy.Caller, id uint) (bool, error) {
	if err := policy.Authorize(caller, policy.OpDelete, policy.EntityTourReservation, nil); err != nil {
		return false, err
	}
	deleted, err := s.links.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("tour reservation deleted", "event", "tour_reservation.delete", "tour_reservation_id", id)
	}
	return deleted, nil
}

func (s *TourReservationService) List(ctx context.Context, caller policy.Caller, filter repository.TourReservationFilter, opts repository.ListOptions) (repository.ListResult[models.TourReservation], error) {
	if err := policy.Authorize(caller, policy.OpList, policy.EntityTourReservation, nil); err != nil {
		return repository.ListResult[models.TourReservation]{}, err
	}
	return s.links.List(ctx, filter, opts)
}

// ListByReservation returns every link of one reservation.
func (s *TourReservationService) ListByReservation(ctx context.Context, caller policy.Caller, reservationID uint) ([]models.TourReservation, error) {
	result, err := s.List(ctx, caller, repository.TourReservationFilter{ReservationID: &reservationID}, repository.ListOptions{})
	return result.Items, err
}

// ListByTour returns every link of one tour.
func (s *TourReservationService) ListByTour(ctx context.Context, caller policy.Caller, tourID uint) ([]models.TourReservation, error) {
	result, err := s.List(ctx, caller, repository.TourReservationFilter{TourID: &tourID}, repository.ListOptions{})
	return result.Items, err
}
