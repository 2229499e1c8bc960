package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"travelapp-backend/apperrors"
	"travelapp-backend/models"
	"travelapp-backend/policy"
	"travelapp-backend/repository"
)

// CreateTourInput mirrors the create operation. Everything except IsActive and
// ProfilePic is required.
type CreateTourInput struct {
	SupervisorID            uint
	MaxNumberOfParticipants int
	DateStart               models.Date
	DateEnd                 models.Date
	PlaceID                 int
	TourType                string
	Price                   decimal.Decimal
	Country                 string
	Region                  string
	City                    string
	Accommodation           string
	IsActive                *bool
	ProfilePic              *string
}

// TourPatch lists the fields a tour update may change. Price arrives as text
// and is parsed exactly. The supervisor is not patchable.
type TourPatch struct {
	MaxNumberOfParticipants *int
	DateStart               *models.Date
	DateEnd                 *models.Date
	PlaceID                 *int
	TourType                *string
	Price                   *string
	Country                 *string
	Region                  *string
	City                    *string
	Accommodation           *string
	IsActive                *bool
	ProfilePic              *string
}

func (p TourPatch) apply(t *models.Tour) error {
	if p.TourType != nil {
		tourType, err := models.ParseTourType(*p.TourType)
		if err != nil {
			return err
		}
		t.TourType = tourType
	}
	if p.Price != nil {
		price, err := models.ParsePrice(*p.Price)
		if err != nil {
			return err
		}
		t.Price = price
	}
	if p.MaxNumberOfParticipants != nil {
		t.MaxNumberOfParticipants = *p.MaxNumberOfParticipants
	}
	if p.DateStart != nil {
		t.DateStart = *p.DateStart
	}
	if p.DateEnd != nil {
		t.DateEnd = *p.DateEnd
	}
	if p.PlaceID != nil {
		t.PlaceID = *p.PlaceID
	}
	if p.Country != nil {
		t.Country = *p.Country
	}
	if p.Region != nil {
		t.Region = *p.Region
	}
	if p.City != nil {
		t.City = *p.City
	}
	if p.Accommodation != nil {
		t.Accommodation = *p.Accommodation
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
	if p.ProfilePic != nil {
		t.ProfilePic = p.ProfilePic
		if *p.ProfilePic == "" {
			t.ProfilePic = nil
		}
	}
	return nil
}

type TourService struct {
	tours  *repository.TourRepository
	users  *repository.UserRepository
	logger *slog.Logger
}

func NewTourService(tours *repository.TourRepository, users *repository.UserRepository, logger *slog.Logger) *TourService {
	return &TourService{
		tours:  tours,
		users:  users,
		logger: resolveLogger(logger).With("module", "tour", "layer", "service"),
	}
}

func (s *TourService) Create(ctx context.Context, caller policy.Caller, in CreateTourInput) (*models.Tour, error) {
	if err := policy.Authorize(caller, policy.OpCreate, policy.EntityTour, nil); err != nil {
		return nil, err
	}
	supervisor, err := s.users.GetByID(ctx, in.SupervisorID)
	if err != nil {
		return nil, err
	}
	tourType, err := models.ParseTourType(in.TourType)
	if err != nil {
		return nil, err
	}
	if in.DateStart.IsZero() {
		return nil, apperrors.Validation("date_start", "this field is required")
	}
	if in.DateEnd.IsZero() {
		return nil, apperrors.Validation("date_end", "this field is required")
	}

	tour := &models.Tour{
		SupervisorID:            supervisor.ID,
		Supervisor:              supervisor,
		MaxNumberOfParticipants: in.MaxNumberOfParticipants,
		DateStart:               in.DateStart,
		DateEnd:                 in.DateEnd,
		PlaceID:                 in.PlaceID,
		TourType:                tourType,
		Price:                   in.Price,
		Country:                 in.Country,
		Region:                  in.Region,
		City:                    in.City,
		Accommodation:           in.Accommodation,
		IsActive:                boolOr(in.IsActive, true),
		ProfilePic:              in.ProfilePic,
	}
	if err := tour.Validate(); err != nil {
		return nil, err
	}
	if err := s.tours.Create(ctx, tour); err != nil {
		return nil, err
	}

	s.logger.Info("tour created", "event", "tour.create", "tour_id", tour.ID, "tour", tour.String())
	return tour, nil
}

// Get is public.
func (s *TourService) Get(ctx context.Context, caller policy.Caller, id uint) (*models.Tour, error) {
	if err := policy.Authorize(caller, policy.OpRead, policy.EntityTour, nil); err != nil {
		return nil, err
	}
	return s.tours.GetByID(ctx, id)
}

func (s *TourService) Update(ctx context.Context, caller policy.Caller, id uint, patch TourPatch) (*models.Tour, error) {
	if err := policy.Authorize(caller, policy.OpUpdate, policy.EntityTour, nil); err != nil {
		return nil, err
	}
	tour, err := s.tours.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := patch.apply(tour); err != nil {
		return nil, err
	}
	if err := tour.Validate(); err != nil {
		return nil, err
	}
	if err := s.tours.Save(ctx, tour); err != nil {
		return nil, err
	}

	s.logger.Info("tour updated", "event", "tour.update", "tour_id", tour.ID)
	return tour, nil
}

// Delete reports false without an error when the tour does not exist.
func (s *TourService) Delete(ctx context.Context, caller policy.Caller, id uint) (bool, error) {
	if err := policy.Authorize(caller, policy.OpDelete, policy.EntityTour, nil); err != nil {
		return false, err
	}
	deleted, err := s.tours.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("tour deleted", "event", "tour.delete", "tour_id", id)
	}
	return deleted, nil
}

func (s *TourService) List(ctx context.Context, caller policy.Caller, filter repository.TourFilter, opts repository.ListOptions) (repository.ListResult[models.Tour], error) {
	if err := policy.Authorize(caller, policy.OpList, policy.EntityTour, nil); err != nil {
		return repository.ListResult[models.Tour]{}, err
	}
	return s.tours.List(ctx, filter, opts)
}

// ListStandard is the live standard-tours view.
func (s *TourService) ListStandard(ctx context.Context, caller policy.Caller, opts repository.ListOptions) (repository.ListResult[models.Tour], error) {
	return s.List(ctx, caller, repository.TourFilter{StandardOnly: true}, opts)
}
