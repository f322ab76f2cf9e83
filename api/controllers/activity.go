package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/openwims/wims-backend/api/responses"
	"github.com/openwims/wims-backend/api/validators"
	"github.com/openwims/wims-backend/internal/activity"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
	"github.com/openwims/wims-backend/pkg/logger"
	"github.com/openwims/wims-backend/pkg/pagination"
)

// AdminActivityList returns one page of the audit trail, newest first.
// Optional filters: user_id, action.
func AdminActivityList(svc activity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "activity service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := activity.ListFilter{
			Action: strings.TrimSpace(r.URL.Query().Get("action")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("user_id")); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid user id"))
				return
			}
			filter.UserID = &userID
		}

		result, err := svc.List(r.Context(), filter, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
