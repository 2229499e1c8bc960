package services

import (
	"testing"
	"time"

	"travelapp-backend/policy"
	"travelapp-backend/repository/repositorytest"
)

func TestCreateTourReservation(t *testing.T) {
	env := newTestEnv(t)
	owner := repositorytest.SeedUser(t, env.db, "client", false)
	guide := repositorytest.SeedUser(t, env.db, "guide", false)
	reservation := repositorytest.SeedReservation(t, env.db, owner)
	tour := repositorytest.SeedTour(t, env.db, guide, "Nice", time.Now())
	caller := callerFor(owner.ID, false)

	link, err := env.tourReservations.Create(ctx, caller, CreateTourReservationInput{ReservationID: reservation.ID, TourID: tour.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if link.IsPriceReduced || !link.IsActive {
		t.Fatalf("expected defaults is_price_reduced=false is_active=true, got %+v", link)
	}
	if got, want := link.String(), "Reservation #1 - Tour #1"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	// Duplicate pairs are accepted.
	if _, err := env.tourReservations.Create(ctx, caller, CreateTourReservationInput{ReservationID: reservation.ID, TourID: tour.ID, IsPriceReduced: ptr(true)}); err != nil {
		t.Fatalf("duplicate link: %v", err)
	}
	links, err := env.tourReservations.ListByReservation(ctx, caller, reservation.ID)
	if err != nil {
		t.Fatalf("list by reservation: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}
	byTour, err := env.tourReservations.ListByTour(ctx, caller, tour.ID)
	if err != nil {
		t.Fatalf("list by tour: %v", err)
	}
	if len(byTour) != 2 {
		t.Fatalf("expected 2 links for the tour, got %d", len(byTour))
	}

	_, err = env.tourReservations.Create(ctx, caller, CreateTourReservationInput{ReservationID: 999, TourID: tour.ID})
	expectNotFound(t, err)
	_, err = env.tourReservations.Create(ctx, caller, CreateTourReservationInput{ReservationID: reservation.ID, TourID: 999})
	expectNotFound(t, err)
	_, err = env.tourReservations.Create(ctx, policy.Anonymous, CreateTourReservationInput{ReservationID: reservation.ID, TourID: tour.ID})
	expectAccessDenied(t, err, false)
}

func TestTourReservationHasNoOwnershipCheck(t *testing.T) {
	env := newTestEnv(t)
	owner := repositorytest.SeedUser(t, env.db, "owner", false)
	stranger := repositorytest.SeedUser(t, env.db, "stranger", false)
	reservation := repositorytest.SeedReservation(t, env.db, owner)
	tour := repositorytest.SeedTour(t, env.db, owner, "Nice", time.Now())
	link := repositorytest.SeedLink(t, env.db, reservation, tour)
	caller := callerFor(stranger.ID, false)

	updated, err := env.tourReservations.Update(ctx, caller, link.ID, TourReservationPatch{IsPriceReduced: ptr(true), IsActive: ptr(false)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.IsPriceReduced || updated.IsActive {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.ReservationID != reservation.ID || updated.TourID != tour.ID {
		t.Fatalf("parents changed: %+v", updated)
	}

	deleted, err := env.tourReservations.Delete(ctx, caller, link.ID)
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, got %v, %v", deleted, err)
	}

	_, err = env.tourReservations.Get(ctx, policy.Anonymous, link.ID)
	expectAccessDenied(t, err, false)
	_, err = env.tourReservations.Get(ctx, caller, link.ID)
	expectNotFound(t, err)
	_, err = env.tourReservations.Update(ctx, caller, link.ID, TourReservationPatch{IsActive: ptr(true)})
	expectNotFound(t, err)
}
