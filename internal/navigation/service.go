package navigation

import (
	"context"
	"fmt"
	"time"

	"github.com/openwims/wims-backend/pkg/config"
	"github.com/openwims/wims-backend/pkg/enums"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
)

// State describes the session's navigation position and the menu visible to
// the user's role.
type State struct {
	CurrentPage enums.Page   `json:"current_page"`
	Menu        []enums.Page `json:"menu"`
}

// Service tracks which page each session is on.
type Service interface {
	State(ctx context.Context, accessID string, role enums.UserRole) (*State, error)
	Navigate(ctx context.Context, accessID string, role enums.UserRole, target enums.Page) (*State, error)
}

type pageStore interface {
	CurrentPage(ctx context.Context, accessID string) (string, error)
	SetCurrentPage(ctx context.Context, accessID, page string) error
}

type service struct {
	store pageStore
	cfg   config.NavigationConfig
}

// ServiceParams bundles the dependencies required to build a navigation service.
type ServiceParams struct {
	Store  pageStore
	Config config.NavigationConfig
}

// NewService constructs a navigation service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("page store is required")
	}
	return &service{store: params.Store, cfg: params.Config}, nil
}

// State returns the session's current page, defaulting to the dashboard, and
// the menu for the user's role.
func (s *service) State(ctx context.Context, accessID string, role enums.UserRole) (*State, error) {
	stored, err := s.store.CurrentPage(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading current page")
	}

	current := enums.PageDashboard
	if stored != "" {
		if page, parseErr := enums.ParsePage(stored); parseErr == nil && page.RequiresAuth() {
			current = page
		}
	}
	// A stored admin page outlives a role downgrade; snap back to the dashboard.
	if current.AdminOnly() && role != enums.UserRoleAdmin {
		current = enums.PageDashboard
	}

	return &State{
		CurrentPage: current,
		Menu:        enums.AuthenticatedPages(role),
	}, nil
}

// Navigate moves the session to the target page after the configured
// transition delay. Admin-only pages reject non-admin roles.
func (s *service) Navigate(ctx context.Context, accessID string, role enums.UserRole, target enums.Page) (*State, error) {
	if !target.IsValid() || !target.RequiresAuth() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid page %q", target))
	}
	if target.AdminOnly() && role != enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions")
	}

	// Re-navigating to the current page skips the transition entirely.
	if stored, err := s.store.CurrentPage(ctx, accessID); err == nil && stored == target.String() {
		return &State{
			CurrentPage: target,
			Menu:        enums.AuthenticatedPages(role),
		}, nil
	}

	if err := s.transitionDelay(ctx); err != nil {
		return nil, err
	}

	if err := s.store.SetCurrentPage(ctx, accessID, target.String()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing current page")
	}

	return &State{
		CurrentPage: target,
		Menu:        enums.AuthenticatedPages(role),
	}, nil
}

func (s *service) transitionDelay(ctx context.Context) error {
	if s.cfg.TransitionDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.cfg.TransitionDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return pkgerrors.Wrap(pkgerrors.CodeInternal, ctx.Err(), "navigation canceled")
	case <-timer.C:
		return nil
	}
}
