package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openwims/wims-backend/internal/auth"
	"github.com/openwims/wims-backend/internal/users"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
	"github.com/openwims/wims-backend/pkg/types"
)

func postJSON(handler http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthLogin(t *testing.T) {
	svc := &stubAuthService{
		loginResp: &auth.LoginResponse{
			AccessToken:  "access",
			RefreshToken: "refresh",
			User:         &users.UserDTO{Username: "alice", Role: "user"},
		},
	}
	rec := postJSON(AuthLogin(svc, nil), "/login", `{"username":"alice","password":"pw"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access" || envelope.Data.User == nil || envelope.Data.User.Username != "alice" {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestAuthLoginValidation(t *testing.T) {
	svc := &stubAuthService{}

	cases := map[string]string{
		"missing password": `{"username":"alice"}`,
		"empty body":       `{}`,
		"unknown field":    `{"username":"alice","password":"pw","remember_me":true}`,
		"malformed json":   `{"username":`,
	}
	for name, body := range cases {
		rec := postJSON(AuthLogin(svc, nil), "/login", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", name, rec.Code)
		}
		var envelope types.ErrorEnvelope
		if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
			t.Fatalf("%s: decode error envelope: %v", name, err)
		}
		if envelope.Error.Code != string(pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation code got %s", name, envelope.Error.Code)
		}
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"),
	}
	rec := postJSON(AuthLogin(svc, nil), "/login", `{"username":"alice","password":"wrong"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Message != "invalid credentials" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestAuthRegister(t *testing.T) {
	svc := &stubAuthService{
		loginResp: &auth.LoginResponse{
			AccessToken:  "access",
			RefreshToken: "refresh",
			User:         &users.UserDTO{Username: "newbie", Role: "user"},
		},
	}
	body := `{"username":"newbie","password":"longenough","confirm_password":"longenough"}`
	rec := postJSON(AuthRegister(svc, nil), "/register", body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
}
