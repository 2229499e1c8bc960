package services

import (
	"testing"

	"travelapp-backend/apperrors"
	"travelapp-backend/models"
	"travelapp-backend/policy"
)

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.Register(ctx, policy.Anonymous, RegisterInput{Username: "a", Email: "a@example.com", Password: "x", Password2: "y"})
	expectValidation(t, err, "password")

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no user to be created, got %d", count)
	}
}

func TestRegisterYieldsUsableAccessToken(t *testing.T) {
	env := newTestEnv(t)

	user, pair, err := env.auth.Register(ctx, policy.Anonymous, RegisterInput{Username: "a", Email: "a@example.com", Password: "x", Password2: "x"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Password == "x" || user.Password == "" {
		t.Fatalf("expected the password to be hashed")
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}

	caller, err := env.auth.Resolve(ctx, pair.Access)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if caller != policy.User(user.ID, false) {
		t.Fatalf("unexpected caller %+v", caller)
	}

	// The new user can immediately create their own reservation.
	if _, err := env.reservations.Create(ctx, caller, CreateReservationInput{UserID: user.ID}); err != nil {
		t.Fatalf("create reservation with registered token: %v", err)
	}

	_, _, err = env.auth.Register(ctx, policy.Anonymous, RegisterInput{Username: "a", Password: "z", Password2: "z"})
	expectValidation(t, err, "username")
}

func TestResolveRejectsRefreshTokens(t *testing.T) {
	env := newTestEnv(t)
	_, pair, err := env.auth.Register(ctx, policy.Anonymous, RegisterInput{Username: "a", Password: "x", Password2: "x"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := env.auth.Resolve(ctx, pair.Refresh); err == nil {
		t.Fatalf("expected a refresh token to be rejected as access token")
	}
	if _, err := env.auth.Resolve(ctx, "garbage"); err == nil {
		t.Fatalf("expected garbage to be rejected")
	}
}

func TestLoginRefreshLogout(t *testing.T) {
	env := newTestEnv(t)
	if _, _, err := env.auth.Register(ctx, policy.Anonymous, RegisterInput{Username: "john", Password: "pass1234", Password2: "pass1234"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := env.auth.Login(ctx, "john", "wrong")
	if !apperrors.IsAccessDenied(err) {
		t.Fatalf("expected access denied for a wrong password, got %v", err)
	}
	_, err = env.auth.Login(ctx, "nobody", "pass1234")
	if !apperrors.IsAccessDenied(err) {
		t.Fatalf("expected access denied for an unknown user, got %v", err)
	}

	pair, err := env.auth.Login(ctx, "john", "pass1234")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	var user models.User
	env.db.Where("username = ?", "john").First(&user)
	if user.LastLogin == nil {
		t.Fatalf("expected last_login to be recorded")
	}

	access, err := env.auth.Refresh(ctx, pair.Refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := env.auth.Resolve(ctx, access); err != nil {
		t.Fatalf("resolve refreshed token: %v", err)
	}

	if err := env.auth.Logout(ctx, pair.Refresh); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, err = env.auth.Refresh(ctx, pair.Refresh)
	if !apperrors.IsAccessDenied(err) {
		t.Fatalf("expected a revoked refresh token to be rejected, got %v", err)
	}
}

func TestResolveReadsCurrentStaffFlag(t *testing.T) {
	env := newTestEnv(t)
	user, pair, err := env.auth.Register(ctx, policy.Anonymous, RegisterInput{Username: "a", Password: "x", Password2: "x"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	env.db.Model(user).Update("is_staff", true)

	caller, err := env.auth.Resolve(ctx, pair.Access)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !caller.IsAdmin() {
		t.Fatalf("expected the promoted user to resolve as administrator")
	}

	env.db.Model(user).Update("is_active", false)
	if _, err := env.auth.Resolve(ctx, pair.Access); err == nil {
		t.Fatalf("expected an inactive user to be rejected")
	}
}
