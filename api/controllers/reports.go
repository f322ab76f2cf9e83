package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/openwims/wims-backend/api/responses"
	"github.com/openwims/wims-backend/internal/reports"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
	"github.com/openwims/wims-backend/pkg/logger"
)

const reportDateLayout = "2006-01-02"

// ReportInventorySummary returns the per-category inventory aggregates.
func ReportInventorySummary(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.InventorySummary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ReportOrderHistory returns per-day order aggregates for the requested
// range. Defaults to the trailing 30 days; the upper bound is exclusive.
func ReportOrderHistory(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		from := now.AddDate(0, 0, -30)
		to := now.AddDate(0, 0, 1)

		if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
			parsed, err := time.Parse(reportDateLayout, raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "from must be YYYY-MM-DD"))
				return
			}
			from = parsed
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
			parsed, err := time.Parse(reportDateLayout, raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "to must be YYYY-MM-DD"))
				return
			}
			// The "to" date is inclusive at the API; the query uses < bound.
			to = parsed.AddDate(0, 0, 1)
		}

		rows, err := svc.OrderHistory(r.Context(), from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ReportSupplierPerformance returns the per-supplier sourcing aggregates.
func ReportSupplierPerformance(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.SupplierPerformance(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
