package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openwims/wims-backend/internal/users"
	pkgAuth "github.com/openwims/wims-backend/pkg/auth"
	"github.com/openwims/wims-backend/pkg/config"
	"github.com/openwims/wims-backend/pkg/db/models"
	"github.com/openwims/wims-backend/pkg/enums"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
	"github.com/openwims/wims-backend/pkg/logger"
	"github.com/openwims/wims-backend/pkg/security"
)

type stubUserRepo struct {
	byUsername map[string]*models.User
	duplicate  bool
	updated    map[uuid.UUID]string
}

func newStubUserRepo(seed ...*models.User) *stubUserRepo {
	repo := &stubUserRepo{
		byUsername: map[string]*models.User{},
		updated:    map[uuid.UUID]string{},
	}
	for _, user := range seed {
		repo.byUsername[user.Username] = user
	}
	return repo
}

func (s *stubUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.duplicate {
		return nil, &duplicateErr{}
	}
	user := dto.ToModel()
	s.byUsername[user.Username] = user
	return user, nil
}

type duplicateErr struct{}

func (*duplicateErr) Error() string { return "UNIQUE constraint failed: users.username" }

func (s *stubUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := s.byUsername[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range s.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	s.updated[id] = hash
	for _, user := range s.byUsername {
		if user.ID == id {
			user.PasswordHash = hash
		}
	}
	return nil
}

type stubSessionManager struct {
	rotateErr error
	revoked   []string
}

func (s *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	return "refresh-for-" + accessID, nil
}

func (s *stubSessionManager) Rotate(_ context.Context, oldAccessID, _ string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return "rotated-" + oldAccessID, "new-refresh", nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

type stubRecorder struct {
	actions []string
}

func (s *stubRecorder) Record(_ context.Context, _ *uuid.UUID, action, _ string) {
	s.actions = append(s.actions, action)
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:     8 * 1024,
		ArgonTime:         1,
		ArgonParallelism:  1,
		ArgonSaltLen:      16,
		ArgonKeyLen:       32,
		AllowLegacySHA256: true,
		MinLength:         8,
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "wims", ExpirationMinutes: 30}
}

func buildService(t *testing.T, repo *stubUserRepo, sessions *stubSessionManager, rec *stubRecorder) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		Activity:       rec,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: testPasswordConfig(),
		Logger:         logg,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func TestLoginSuccess(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: mustHash(t, "warehouse-pass"),
		Role:         enums.UserRoleManager,
	}
	rec := &stubRecorder{}
	svc := buildService(t, newStubUserRepo(user), &stubSessionManager{}, rec)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "warehouse-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.RefreshToken == "" {
		t.Fatal("expected refresh token")
	}
	if resp.User == nil || resp.User.Username != "alice" {
		t.Fatalf("unexpected user payload %+v", resp.User)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.UserRoleManager {
		t.Fatalf("expected manager role claim, got %s", claims.Role)
	}

	if len(rec.actions) != 1 || rec.actions[0] != "Login" {
		t.Fatalf("expected Login audit entry, got %v", rec.actions)
	}
}

func TestLoginRejectsBadCredentialsGenerically(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: mustHash(t, "warehouse-pass"),
		Role:         enums.UserRoleUser,
	}
	svc := buildService(t, newStubUserRepo(user), &stubSessionManager{}, &stubRecorder{})

	cases := []LoginRequest{
		{Username: "alice", Password: "wrong"},
		{Username: "nobody", Password: "warehouse-pass"},
		{Username: "  ", Password: "warehouse-pass"},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized for %+v, got %v", req, err)
		}
		if appErr.Error() != invalidCredentialsMessage {
			t.Fatalf("expected generic message, got %q", appErr.Error())
		}
	}
}

func TestLoginUpgradesLegacyDigest(t *testing.T) {
	password := "legacy-pass-123"
	digest := sha256.Sum256([]byte(password))
	user := &models.User{
		ID:           uuid.New(),
		Username:     "olduser",
		PasswordHash: hex.EncodeToString(digest[:]),
		Role:         enums.UserRoleUser,
	}
	repo := newStubUserRepo(user)
	svc := buildService(t, repo, &stubSessionManager{}, &stubRecorder{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "olduser", Password: password})
	if err != nil {
		t.Fatalf("legacy login: %v", err)
	}

	upgraded, ok := repo.updated[user.ID]
	if !ok {
		t.Fatal("expected password hash upgrade on legacy login")
	}
	if security.IsLegacyDigest(upgraded) {
		t.Fatal("upgraded hash should not be a legacy digest")
	}

	// the new hash still verifies
	valid, err := security.VerifyPassword(password, upgraded, testPasswordConfig())
	if err != nil || !valid {
		t.Fatalf("upgraded hash should verify, valid=%v err=%v", valid, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := buildService(t, newStubUserRepo(), &stubSessionManager{}, &stubRecorder{})

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "bob", Password: "short", ConfirmPassword: "short"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for short password, got %v", err)
	}

	_, err = svc.Register(context.Background(), RegisterRequest{Username: "bob", Password: "long-enough", ConfirmPassword: "different-pass"})
	appErr = pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for mismatch, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	repo.duplicate = true
	svc := buildService(t, repo, &stubSessionManager{}, &stubRecorder{})

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "long-enough", ConfirmPassword: "long-enough"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestRegisterIssuesTokensAndRecords(t *testing.T) {
	rec := &stubRecorder{}
	svc := buildService(t, newStubUserRepo(), &stubSessionManager{}, rec)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Username:        "Bob",
		Password:        "long-enough",
		ConfirmPassword: "long-enough",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User.Username != "bob" {
		t.Fatalf("expected lowercased username, got %q", resp.User.Username)
	}
	if resp.User.Role != enums.UserRoleUser {
		t.Fatalf("expected default user role, got %s", resp.User.Role)
	}
	if len(rec.actions) != 1 || rec.actions[0] != "Account created" {
		t.Fatalf("expected Account created audit entry, got %v", rec.actions)
	}
}

func TestRefreshMintsNewTokenPair(t *testing.T) {
	svc := buildService(t, newStubUserRepo(), &stubSessionManager{}, &stubRecorder{})

	userID := uuid.New()
	oldToken, err := pkgAuth.MintAccessToken(testJWTConfig(), time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   userID,
		Username: "alice",
		Role:     enums.UserRoleUser,
		JTI:      "old-access-id",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), oldToken, RefreshRequest{RefreshToken: "whatever"})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("rotated token must keep user id")
	}
	if claims.ID != "rotated-old-access-id" {
		t.Fatalf("rotated token must carry the new access id, got %q", claims.ID)
	}
	if resp.RefreshToken != "new-refresh" {
		t.Fatalf("unexpected refresh token %q", resp.RefreshToken)
	}
}

func TestLogoutRevokesSessionAndRecords(t *testing.T) {
	sessions := &stubSessionManager{}
	rec := &stubRecorder{}
	svc := buildService(t, newStubUserRepo(), sessions, rec)

	userID := uuid.New()
	if err := svc.Logout(context.Background(), userID, "access-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-1" {
		t.Fatalf("expected session revocation, got %v", sessions.revoked)
	}
	if len(rec.actions) != 1 || rec.actions[0] != "Logout" {
		t.Fatalf("expected Logout audit entry, got %v", rec.actions)
	}
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: mustHash(t, "warehouse-pass"),
		Role:         enums.UserRoleUser,
	}
	svc := buildService(t, newStubUserRepo(user), &stubSessionManager{}, &stubRecorder{})

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-password-1",
		ConfirmPassword: "new-password-1",
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestChangePasswordSuccess(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: mustHash(t, "warehouse-pass"),
		Role:         enums.UserRoleUser,
	}
	repo := newStubUserRepo(user)
	rec := &stubRecorder{}
	svc := buildService(t, repo, &stubSessionManager{}, rec)

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "warehouse-pass",
		NewPassword:     "new-password-1",
		ConfirmPassword: "new-password-1",
	})
	if err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, ok := repo.updated[user.ID]; !ok {
		t.Fatal("expected password hash update")
	}
	if len(rec.actions) != 1 || rec.actions[0] != "Changed password" {
		t.Fatalf("expected Changed password audit entry, got %v", rec.actions)
	}
}
