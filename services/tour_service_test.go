package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"travelapp-backend/models"
	"travelapp-backend/policy"
	"travelapp-backend/repository"
	"travelapp-backend/repository/repositorytest"
)

func florenceTour(supervisorID uint, tourType string) CreateTourInput {
	start := models.NewDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	end := models.NewDate(time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC))
	return CreateTourInput{
		SupervisorID:            supervisorID,
		MaxNumberOfParticipants: 20,
		DateStart:               start,
		DateEnd:                 end,
		PlaceID:                 1,
		TourType:                tourType,
		Price:                   decimal.RequireFromString("999.99"),
		Country:                 "Italy",
		Region:                  "Tuscany",
		City:                    "Florence",
		Accommodation:           "Hotel Florence",
	}
}

func TestCreateTourStringForm(t *testing.T) {
	env := newTestEnv(t)
	admin := repositorytest.SeedUser(t, env.db, "admin", true)

	tour, err := env.tours.Create(ctx, callerFor(admin.ID, true), florenceTour(admin.ID, "standard"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if want := fmt.Sprintf("Tour #%d - Florence, Italy", tour.ID); tour.String() != want {
		t.Fatalf("expected %q, got %q", want, tour.String())
	}
	if !tour.IsActive {
		t.Fatalf("expected tours to be active by default")
	}
	if !tour.Price.Equal(decimal.RequireFromString("999.99")) {
		t.Fatalf("expected price 999.99, got %s", tour.Price)
	}
}

func TestStandardToursView(t *testing.T) {
	env := newTestEnv(t)
	admin := repositorytest.SeedUser(t, env.db, "admin", true)
	caller := callerFor(admin.ID, true)

	for _, tourType := range []string{"standard", "exclusive", "all inclusive"} {
		if _, err := env.tours.Create(ctx, caller, florenceTour(admin.ID, tourType)); err != nil {
			t.Fatalf("create %s tour: %v", tourType, err)
		}
	}

	result, err := env.tours.ListStandard(ctx, policy.Anonymous, repository.ListOptions{})
	if err != nil {
		t.Fatalf("list standard: %v", err)
	}
	if result.Count != 1 || result.Items[0].TourType != models.TourTypeStandard {
		t.Fatalf("expected only the standard tour, got %+v", result.Items)
	}

	// The view follows updates.
	if _, err := env.tours.Update(ctx, caller, result.Items[0].ID, TourPatch{TourType: ptr("exclusive")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	result, err = env.tours.ListStandard(ctx, policy.Anonymous, repository.ListOptions{})
	if err != nil {
		t.Fatalf("list standard: %v", err)
	}
	if result.Count != 0 {
		t.Fatalf("expected empty standard view, got %d", result.Count)
	}
}

func TestCreateTourValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := repositorytest.SeedUser(t, env.db, "admin", true)
	caller := callerFor(admin.ID, true)

	_, err := env.tours.Create(ctx, caller, florenceTour(admin.ID, "luxury"))
	expectValidation(t, err, "tour_type")

	_, err = env.tours.Create(ctx, caller, florenceTour(999, "standard"))
	expectNotFound(t, err)

	in := florenceTour(admin.ID, "standard")
	in.Price = decimal.RequireFromString("10.999")
	_, err = env.tours.Create(ctx, caller, in)
	expectValidation(t, err, "price")

	in = florenceTour(admin.ID, "standard")
	in.MaxNumberOfParticipants = 0
	_, err = env.tours.Create(ctx, caller, in)
	expectValidation(t, err, "max_number_of_participants")
}

func TestTourMutationsRequireAdministrator(t *testing.T) {
	env := newTestEnv(t)
	admin := repositorytest.SeedUser(t, env.db, "admin", true)
	supervisor := repositorytest.SeedUser(t, env.db, "guide", false)
	tour := repositorytest.SeedTour(t, env.db, supervisor, "Zakopane", time.Now())
	regular := callerFor(supervisor.ID, false)

	_, err := env.tours.Create(ctx, regular, florenceTour(supervisor.ID, "standard"))
	expectAccessDenied(t, err, true)
	_, err = env.tours.Update(ctx, regular, tour.ID, TourPatch{City: ptr("Krakow")})
	expectAccessDenied(t, err, true)
	_, err = env.tours.Delete(ctx, regular, tour.ID)
	expectAccessDenied(t, err, true)
	_, err = env.tours.Create(ctx, policy.Anonymous, florenceTour(admin.ID, "standard"))
	expectAccessDenied(t, err, false)

	got, err := env.tours.Get(ctx, policy.Anonymous, tour.ID)
	if err != nil {
		t.Fatalf("anonymous read: %v", err)
	}
	if got.City != "Zakopane" {
		t.Fatalf("expected Zakopane, got %s", got.City)
	}
	if _, err := env.tours.List(ctx, policy.Anonymous, repository.TourFilter{}, repository.ListOptions{}); err != nil {
		t.Fatalf("anonymous list: %v", err)
	}

	_, err = env.tours.Get(ctx, policy.Anonymous, 999)
	expectNotFound(t, err)
}

func TestUpdateTourPriceIsExact(t *testing.T) {
	env := newTestEnv(t)
	admin := repositorytest.SeedUser(t, env.db, "admin", true)
	caller := callerFor(admin.ID, true)
	tour := repositorytest.SeedTour(t, env.db, admin, "Zakopane", time.Now())

	updated, err := env.tours.Update(ctx, caller, tour.ID, TourPatch{Price: ptr("250.99")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := decimal.New(25099, -2)
	if !updated.Price.Equal(want) {
		t.Fatalf("expected %s, got %s", want, updated.Price)
	}

	reloaded, err := env.tours.Get(ctx, caller, tour.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reloaded.Price.StringFixed(2) != "250.99" {
		t.Fatalf("expected stored price 250.99, got %s", reloaded.Price.StringFixed(2))
	}
	if reloaded.City != "Zakopane" || reloaded.SupervisorID != admin.ID {
		t.Fatalf("unsupplied fields changed: %+v", reloaded)
	}

	_, err = env.tours.Update(ctx, caller, tour.ID, TourPatch{Price: ptr("two hundred")})
	expectValidation(t, err, "price")

	_, err = env.tours.Update(ctx, caller, 999, TourPatch{Price: ptr("1.00")})
	expectNotFound(t, err)
}

func TestDeleteTourCascadesToLinks(t *testing.T) {
	env := newTestEnv(t)
	admin := repositorytest.SeedUser(t, env.db, "admin", true)
	reservation := repositorytest.SeedReservation(t, env.db, admin)
	tour := repositorytest.SeedTour(t, env.db, admin, "Nice", time.Now())
	repositorytest.SeedLink(t, env.db, reservation, tour)

	deleted, err := env.tours.Delete(ctx, callerFor(admin.ID, true), tour.ID)
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, got %v, %v", deleted, err)
	}

	var links, reservations int64
	env.db.Model(&models.TourReservation{}).Count(&links)
	env.db.Model(&models.Reservation{}).Count(&reservations)
	if links != 0 || reservations != 1 {
		t.Fatalf("expected links gone and reservation kept, got %d links, %d reservations", links, reservations)
	}
}
