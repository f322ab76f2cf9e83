package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openwims/wims-backend/internal/auth"
	pkgAuth "github.com/openwims/wims-backend/pkg/auth"
	"github.com/openwims/wims-backend/pkg/auth/session"
	"github.com/openwims/wims-backend/pkg/config"
	"github.com/openwims/wims-backend/pkg/enums"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
)

type stubAuthService struct {
	loginResp    *auth.LoginResponse
	loginErr     error
	refreshResp  *auth.RefreshResponse
	refreshErr   error
	loggedOutID  uuid.UUID
	loggedOutSID string
}

func (s *stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) Register(context.Context, auth.RegisterRequest) (*auth.LoginResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) Refresh(context.Context, string, auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return s.refreshResp, s.refreshErr
}

func (s *stubAuthService) Logout(_ context.Context, userID uuid.UUID, accessID string) error {
	s.loggedOutID = userID
	s.loggedOutSID = accessID
	return nil
}

func (s *stubAuthService) ChangePassword(context.Context, uuid.UUID, auth.ChangePasswordRequest) error {
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "wims", ExpirationMinutes: 10}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig) (string, string, uuid.UUID) {
	t.Helper()
	accessID := session.NewAccessID()
	userID := uuid.New()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   userID,
		Username: "alice",
		Role:     enums.UserRoleUser,
		JTI:      accessID,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}
	return token, accessID, userID
}

func TestAuthLogout(t *testing.T) {
	cfg := testJWTConfig()
	svc := &stubAuthService{}
	handler := AuthLogout(svc, cfg, nil)

	token, accessID, userID := mintTestToken(t, cfg)
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.loggedOutSID != accessID || svc.loggedOutID != userID {
		t.Fatalf("expected logout for %s/%s got %s/%s", userID, accessID, svc.loggedOutID, svc.loggedOutSID)
	}
}

func TestAuthLogoutWithoutToken(t *testing.T) {
	handler := AuthLogout(&stubAuthService{}, testJWTConfig(), nil)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthRefresh(t *testing.T) {
	cfg := testJWTConfig()
	svc := &stubAuthService{
		refreshResp: &auth.RefreshResponse{AccessToken: "new-access", RefreshToken: "new-refresh"},
	}
	handler := AuthRefresh(svc, nil)

	token, _, _ := mintTestToken(t, cfg)
	body := `{"refresh_token":"old-refresh"}`
	req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data auth.RefreshResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RefreshToken != "new-refresh" || envelope.Data.AccessToken != "new-access" {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestAuthRefreshInvalidToken(t *testing.T) {
	cfg := testJWTConfig()
	svc := &stubAuthService{
		refreshErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"),
	}
	handler := AuthRefresh(svc, nil)

	token, _, _ := mintTestToken(t, cfg)
	body := `{"refresh_token":"stale"}`
	req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
