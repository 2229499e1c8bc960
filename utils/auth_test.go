package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"travelapp-backend/policy"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, time.Hour)
	issued, err := m.IssueAccess(7, true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := m.Parse(issued.Token, TokenTypeAccess)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 || !claims.IsStaff || claims.ID != issued.ID {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if _, err := m.Parse(issued.Token, TokenTypeRefresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected an access token to be rejected as refresh token, got %v", err)
	}
}

func TestTokenManagerRejectsExpiredAndForeignTokens(t *testing.T) {
	issuedAt := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	m := NewTokenManager("secret", time.Minute, time.Hour)
	m.Now = func() time.Time { return issuedAt }
	issued, err := m.IssueRefresh(1, false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m.Now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if _, err := m.Parse(issued.Token, TokenTypeRefresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}

	other := NewTokenManager("other-secret", time.Minute, time.Hour)
	other.Now = func() time.Time { return issuedAt }
	if _, err := other.Parse(issued.Token, TokenTypeRefresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected token signed with another secret to be rejected, got %v", err)
	}
}

func TestHashPasswordFallsBackToDefaultCost(t *testing.T) {
	hash, err := HashPassword("pass1234", 99)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("pass1234", hash) || CheckPasswordHash("wrong", hash) {
		t.Fatalf("password check mismatch")
	}
}

type resolverFunc func(ctx context.Context, token string) (policy.Caller, error)

func (f resolverFunc) Resolve(ctx context.Context, token string) (policy.Caller, error) {
	return f(ctx, token)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := resolverFunc(func(_ context.Context, token string) (policy.Caller, error) {
		if token != "good" {
			return policy.Anonymous, ErrInvalidToken
		}
		return policy.Caller{UserID: 3, Authenticated: true}, nil
	})
	r := gin.New()
	r.Use(AuthMiddleware(resolver))
	r.GET("/", func(c *gin.Context) {
		fromGin := CurrentCaller(c)
		fromCtx := CallerFromContext(c.Request.Context())
		if fromGin != fromCtx {
			t.Errorf("expected the same caller in gin and context, got %+v and %+v", fromGin, fromCtx)
		}
		c.JSON(http.StatusOK, gin.H{"user": fromGin.UserID, "authenticated": fromGin.Authenticated})
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"anonymous", "", http.StatusOK},
		{"valid", "Bearer good", http.StatusOK},
		{"invalid token", "Bearer bad", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("+48 (600) 100-200"); got != "+48600100200" {
		t.Fatalf("expected +48600100200, got %s", got)
	}
	if ValidatePhone("12ab") {
		t.Fatalf("expected letters to be rejected")
	}
}
