package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opencivic/civic-api/config"
	"github.com/opencivic/civic-api/util/values"
)

func TestCreateAndVerifyToken(t *testing.T) {
	api := &API{Config: &config.Config{JwtSecret: "test-secret", JwtExpires: "1h"}}

	token, _, err := api.createToken("6f1c7b1a-0000-4000-8000-000000000001")
	if err != nil {
		t.Fatalf("createToken returned error %v", err)
	}

	claims, err := api.verifyToken(token)
	if err != nil {
		t.Fatalf("verifyToken returned error %v", err)
	}
	if claims.UserID != "6f1c7b1a-0000-4000-8000-000000000001" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Type != "access" {
		t.Errorf("Type = %q; want access", claims.Type)
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	minter := &API{Config: &config.Config{JwtSecret: "secret-a", JwtExpires: "1h"}}
	verifier := &API{Config: &config.Config{JwtSecret: "secret-b", JwtExpires: "1h"}}

	token, _, err := minter.createToken("user")
	if err != nil {
		t.Fatalf("createToken returned error %v", err)
	}

	if _, err := verifier.verifyToken(token); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	api := &API{Config: &config.Config{JwtSecret: "test-secret", JwtExpires: "-1h"}}

	token, _, err := api.createToken("user")
	if err != nil {
		t.Fatalf("createToken returned error %v", err)
	}

	_, err = api.verifyToken(token)
	if err == nil || err.Error() != "token expired" {
		t.Fatalf("expected token expired error, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	api := &API{}

	testCases := []struct {
		name         string
		role         string
		allowed      []string
		expectedCode int
	}{
		{"Citizen allowed", values.RoleCitizen, []string{values.RoleCitizen}, http.StatusOK},
		{"Admin allowed in set", values.RoleAdmin, []string{values.RoleAdmin, values.RoleWorker}, http.StatusOK},
		{"Citizen rejected from admin route", values.RoleCitizen, []string{values.RoleAdmin}, http.StatusForbidden},
		{"Missing role rejected", "", []string{values.RoleCitizen}, http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := api.RequireRole(tc.allowed...)(next)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.role != "" {
				req = req.WithContext(context.WithValue(req.Context(), values.ContextUserRoleKey, tc.role))
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.expectedCode {
				t.Errorf("status = %d; want %d", rec.Code, tc.expectedCode)
			}
		})
	}
}
