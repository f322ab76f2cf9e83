package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/openwims/wims-backend/pkg/config"
	pkgdb "github.com/openwims/wims-backend/pkg/db"
	"github.com/openwims/wims-backend/pkg/db/models"
	"github.com/openwims/wims-backend/pkg/enums"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
	"github.com/openwims/wims-backend/pkg/security"
)

// CreateUserRequest is the admin-facing payload for provisioning an account.
// Unlike self-registration it accepts an explicit role.
type CreateUserRequest struct {
	Username string
	Password string
	Role     enums.UserRole
}

// Service exposes the admin user management operations.
type Service interface {
	List(ctx context.Context) ([]UserDTO, error)
	Create(ctx context.Context, actor uuid.UUID, req CreateUserRequest) (*UserDTO, error)
}

type userRepository interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type activityRecorder interface {
	Record(ctx context.Context, userID *uuid.UUID, action, details string)
}

type service struct {
	repo        userRepository
	activity    activityRecorder
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo           userRepository
	Activity       activityRecorder
	PasswordConfig config.PasswordConfig
}

// NewService constructs a users service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.Activity == nil {
		return nil, fmt.Errorf("activity recorder is required")
	}
	return &service{
		repo:        params.Repo,
		activity:    params.Activity,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, actor uuid.UUID, req CreateUserRequest) (*UserDTO, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if len(req.Password) < s.minPasswordLength() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", s.minPasswordLength()))
	}
	role := req.Role
	if role == "" {
		role = enums.UserRoleUser
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", req.Role))
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "users_username") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	s.activity.Record(ctx, &actor, "Created user", fmt.Sprintf("%s (%s)", user.Username, user.Role))
	return FromModel(user), nil
}

func (s *service) minPasswordLength() int {
	if s.passwordCfg.MinLength > 0 {
		return s.passwordCfg.MinLength
	}
	return 8
}
