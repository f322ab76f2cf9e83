package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openwims/wims-backend/api/responses"
	"github.com/openwims/wims-backend/api/validators"
	"github.com/openwims/wims-backend/internal/inventory"
	pkgerrors "github.com/openwims/wims-backend/pkg/errors"
	"github.com/openwims/wims-backend/pkg/logger"
)

type createItemRequest struct {
	ItemName    string          `json:"item_name" validate:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	MinStock    *int            `json:"min_stock"`
	Price       decimal.Decimal `json:"price"`
	Supplier    string          `json:"supplier" validate:"required"`
}

type updateItemRequest struct {
	ItemName    *string          `json:"item_name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Stock       *int             `json:"stock"`
	MinStock    *int             `json:"min_stock"`
	Price       *decimal.Decimal `json:"price"`
	Supplier    *string          `json:"supplier"`
}

func inventoryFilterFromQuery(r *http.Request) inventory.ListFilter {
	q := r.URL.Query()
	lowStock, _ := strconv.ParseBool(q.Get("low_stock"))
	return inventory.ListFilter{
		Category:     strings.TrimSpace(q.Get("category")),
		Search:       strings.TrimSpace(q.Get("search")),
		LowStockOnly: lowStock,
	}
}

func itemIDFromPath(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item id")
	}
	return id, nil
}

// InventoryList returns items matching the optional category/search/low_stock
// query parameters.
func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), inventoryFilterFromQuery(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// InventoryLowStock returns only the items below their minimum stock.
func InventoryLowStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), inventory.ListFilter{LowStockOnly: true})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// InventoryCategories returns the distinct categories in use.
func InventoryCategories(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// InventoryDetail returns one item by ID.
func InventoryDetail(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// InventoryCreate adds a new item.
func InventoryCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), actor, inventory.CreateItemDTO{
			ItemName:    body.ItemName,
			Description: body.Description,
			Category:    body.Category,
			Stock:       body.Stock,
			MinStock:    body.MinStock,
			Price:       body.Price,
			Supplier:    body.Supplier,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// InventoryUpdate applies a partial update to an item.
func InventoryUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), actor, id, inventory.UpdateItemDTO{
			ItemName:    body.ItemName,
			Description: body.Description,
			Category:    body.Category,
			Stock:       body.Stock,
			MinStock:    body.MinStock,
			Price:       body.Price,
			Supplier:    body.Supplier,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// InventoryDelete removes an item.
func InventoryDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// InventoryExport streams the filtered inventory as a CSV download.
func InventoryExport(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filename := fmt.Sprintf("inventory_%s.csv", time.Now().UTC().Format("20060102_150405"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		if err := svc.ExportCSV(r.Context(), actor, inventoryFilterFromQuery(r), w); err != nil {
			// Headers are already written; log and stop the stream.
			if logg != nil {
				logg.Error(r.Context(), "inventory export failed", err)
			}
			return
		}
	}
}
