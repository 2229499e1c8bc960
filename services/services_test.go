package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"travelapp-backend/apperrors"
	"travelapp-backend/policy"
	"travelapp-backend/repository"
	"travelapp-backend/repository/repositorytest"
	"travelapp-backend/utils"
)

type testEnv struct {
	db               *gorm.DB
	reservations     *ReservationService
	tours            *TourService
	tourReservations *TourReservationService
	users            *UserService
	auth             *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := repositorytest.Open(t)
	userRepo := repository.NewUserRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	tourRepo := repository.NewTourRepository(db)
	linkRepo := repository.NewTourReservationRepository(db)
	tokens := utils.NewTokenManager("test-secret", 5*time.Minute, 24*time.Hour)

	return &testEnv{
		db:               db,
		reservations:     NewReservationService(reservationRepo, userRepo, nil),
		tours:            NewTourService(tourRepo, userRepo, nil),
		tourReservations: NewTourReservationService(linkRepo, reservationRepo, tourRepo, nil),
		users:            NewUserService(userRepo, bcrypt.MinCost, nil),
		auth:             NewAuthService(userRepo, repository.NewRefreshTokenRepository(db), tokens, bcrypt.MinCost, nil),
	}
}

var ctx = context.Background()

func ptr[T any](v T) *T {
	return &v
}

func expectAccessDenied(t *testing.T, err error, authenticated bool) {
	t.Helper()
	var denied *apperrors.AccessDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected access denied, got %v", err)
	}
	if denied.Authenticated != authenticated {
		t.Fatalf("expected Authenticated=%v, got %v", authenticated, denied.Authenticated)
	}
}

func expectNotFound(t *testing.T, err error) {
	t.Helper()
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func expectValidation(t *testing.T, err error, field string) {
	t.Helper()
	var validation *apperrors.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validation.Field != field {
		t.Fatalf("expected validation error on %q, got %q", field, validation.Field)
	}
}

func callerFor(id uint, isStaff bool) policy.Caller {
	return policy.User(id, isStaff)
}
