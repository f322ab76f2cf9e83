package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/openwims/wims-backend/api/middleware"
	"github.com/openwims/wims-backend/pkg/enums"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
)

// currentUserID returns the authenticated user's UUID from the request context.
func currentUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return id, nil
}

func currentRole(r *http.Request) enums.UserRole {
	return enums.UserRole(middleware.RoleFromContext(r.Context()))
}

func currentAccessID(r *http.Request) (string, error) {
	accessID := middleware.AccessIDFromContext(r.Context())
	if accessID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}
	return accessID, nil
}
