package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"travelapp-backend/policy"
	"travelapp-backend/utils"
)

type staticResolver struct {
	caller policy.Caller
}

func (s staticResolver) Resolve(_ context.Context, token string) (policy.Caller, error) {
	if token != "good" {
		return policy.Anonymous, errors.New("bad token")
	}
	return s.caller, nil
}

func TestHandlerRunsAsAuthenticatedCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)

	r := gin.New()
	r.Use(utils.AuthMiddleware(staticResolver{caller: f.admin}))
	r.POST("/graphql/", Handler(f.schema, nil))

	body, _ := json.Marshal(Request{Query: `{ allReservations { amountOfAdults } }`})
	req := httptest.NewRequest(http.MethodPost, "/graphql/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var response struct {
		Data struct {
			AllReservations []struct {
				AmountOfAdults int `json:"amountOfAdults"`
			} `json:"allReservations"`
		} `json:"data"`
		Errors []struct {
			Message    string                 `json:"message"`
			Extensions map[string]interface{} `json:"extensions"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(response.Errors) > 0 || len(response.Data.AllReservations) != 1 {
		t.Fatalf("unexpected response %s", w.Body.String())
	}

	// Anonymous callers reach the schema and are denied by the policy.
	req = httptest.NewRequest(http.MethodPost, "/graphql/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	response.Errors = nil
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(response.Errors) != 1 || response.Errors[0].Extensions["code"] != "UNAUTHENTICATED" {
		t.Fatalf("expected an UNAUTHENTICATED error, got %s", w.Body.String())
	}
}

func TestHandlerRejectsMissingQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)

	r := gin.New()
	r.POST("/graphql/", Handler(f.schema, nil))

	req := httptest.NewRequest(http.MethodPost, "/graphql/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandlerRejectsInvalidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)

	r := gin.New()
	r.Use(utils.AuthMiddleware(staticResolver{caller: f.admin}))
	r.POST("/graphql/", Handler(f.schema, nil))

	req := httptest.NewRequest(http.MethodPost, "/graphql/", bytes.NewReader([]byte(`{"query":"{ allTours { city } }"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer expired")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
