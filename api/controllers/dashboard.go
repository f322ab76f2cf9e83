package controllers

import (
	"net/http"

	"github.com/openwims/wims-backend/api/responses"
	"github.com/openwims/wims-backend/internal/dashboard"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
	"github.com/openwims/wims-backend/pkg/logger"
)

// DashboardSummary returns the headline metrics, recent orders, and low-stock
// alerts rendered on the landing page.
func DashboardSummary(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}
