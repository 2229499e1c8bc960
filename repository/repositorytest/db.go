// Package repositorytest opens migrated in-memory databases for tests.
package repositorytest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"travelapp-backend/config"
	"travelapp-backend/models"
)

// Open returns a fresh, migrated in-memory SQLite database closed with the test.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := config.ConnectDB(config.Config{DBDriver: "sqlite", DBURL: "file::memory:"}, nil)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedUser inserts a user with an unusable password.
func SeedUser(t testing.TB, db *gorm.DB, username string, isStaff bool) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "!",
		IsStaff:  isStaff,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func SeedReservation(t testing.TB, db *gorm.DB, owner *models.User) *models.Reservation {
	t.Helper()
	reservation := &models.Reservation{
		UserID:            owner.ID,
		DateOfReservation: models.Today(),
		AmountOfChildren:  1,
		AmountOfAdults:    2,
		IsConfirmed:       true,
		IsActive:          true,
	}
	if err := db.Omit("User").Create(reservation).Error; err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	return reservation
}

// SeedTour inserts an active standard tour starting on start.
func SeedTour(t testing.TB, db *gorm.DB, supervisor *models.User, city string, start time.Time) *models.Tour {
	t.Helper()
	tour := &models.Tour{
		SupervisorID:            supervisor.ID,
		MaxNumberOfParticipants: 10,
		DateStart:               models.NewDate(start),
		DateEnd:                 models.NewDate(start.AddDate(0, 0, 3)),
		PlaceID:                 1,
		TourType:                models.TourTypeStandard,
		Price:                   decimal.RequireFromString("199.99"),
		Country:                 "Poland",
		Region:                  "Tatra",
		City:                    city,
		Accommodation:           "Hotel",
		IsActive:                true,
	}
	if err := db.Omit("Supervisor").Create(tour).Error; err != nil {
		t.Fatalf("seed tour: %v", err)
	}
	return tour
}

func SeedLink(t testing.TB, db *gorm.DB, reservation *models.Reservation, tour *models.Tour) *models.TourReservation {
	t.Helper()
	link := &models.TourReservation{ReservationID: reservation.ID, TourID: tour.ID, IsActive: true}
	if err := db.Omit("Reservation", "Tour").Create(link).Error; err != nil {
		t.Fatalf("seed link: %v", err)
	}
	return link
}
