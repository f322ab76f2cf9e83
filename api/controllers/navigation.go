package controllers

import (
	"net/http"

	"github.com/openwims/wims-backend/api/responses"
	"github.com/openwims/wims-backend/api/validators"
	"github.com/openwims/wims-backend/internal/navigation"
	"github.com/openwims/wims-backend/pkg/enums"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
	"github.com/openwims/wims-backend/pkg/logger"
)

type navigateRequest struct {
	Page string `json:"page" validate:"required"`
}

// NavigationState returns the session's current page and role-scoped menu.
func NavigationState(svc navigation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "navigation service unavailable"))
			return
		}

		accessID, err := currentAccessID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := svc.State(r.Context(), accessID, currentRole(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, state)
	}
}

// NavigationNavigate moves the session to the requested page.
func NavigationNavigate(svc navigation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "navigation service unavailable"))
			return
		}

		var body navigateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accessID, err := currentAccessID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithPage(ctx, body.Page)
		}

		state, err := svc.Navigate(ctx, accessID, currentRole(r), enums.Page(body.Page))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, state)
	}
}
