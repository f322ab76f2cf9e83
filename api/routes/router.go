package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openwims/wims-backend/api/controllers"
	"github.com/openwims/wims-backend/api/middleware"
	"github.com/openwims/wims-backend/internal/activity"
	"github.com/openwims/wims-backend/internal/auth"
	"github.com/openwims/wims-backend/internal/dashboard"
	"github.com/openwims/wims-backend/internal/inventory"
	"github.com/openwims/wims-backend/internal/navigation"
	"github.com/openwims/wims-backend/internal/orders"
	"github.com/openwims/wims-backend/internal/reports"
	"github.com/openwims/wims-backend/internal/suppliers"
	"github.com/openwims/wims-backend/internal/users"
	"github.com/openwims/wims-backend/pkg/auth/session"
	"github.com/openwims/wims-backend/pkg/config"
	"github.com/openwims/wims-backend/pkg/db"
	"github.com/openwims/wims-backend/pkg/logger"
	"github.com/openwims/wims-backend/pkg/metrics"
	"github.com/openwims/wims-backend/pkg/redis"
)

// Services bundles every domain service the router exposes.
type Services struct {
	Auth       auth.Service
	Navigation navigation.Service
	Dashboard  dashboard.Service
	Inventory  inventory.Service
	Orders     orders.Service
	Suppliers  suppliers.Service
	Reports    reports.Service
	Users      users.Service
	Activity   activity.Service
}

// NewRouter assembles the full HTTP surface.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Route("/navigation", func(r chi.Router) {
			r.Get("/", controllers.NavigationState(svcs.Navigation, logg))
			r.Post("/navigate", controllers.NavigationNavigate(svcs.Navigation, logg))
		})

		r.Get("/dashboard", controllers.DashboardSummary(svcs.Dashboard, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(svcs.Inventory, logg))
			r.Post("/", controllers.InventoryCreate(svcs.Inventory, logg))
			r.Get("/low-stock", controllers.InventoryLowStock(svcs.Inventory, logg))
			r.Get("/categories", controllers.InventoryCategories(svcs.Inventory, logg))
			r.Get("/export", controllers.InventoryExport(svcs.Inventory, logg))
			r.Get("/{itemId}", controllers.InventoryDetail(svcs.Inventory, logg))
			r.Patch("/{itemId}", controllers.InventoryUpdate(svcs.Inventory, logg))
			r.Delete("/{itemId}", controllers.InventoryDelete(svcs.Inventory, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(svcs.Orders, logg))
			r.Post("/", controllers.OrderPlace(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(svcs.Orders, logg))
			r.With(middleware.RequireOrderManager(logg)).
				Patch("/{orderId}/status", controllers.OrderUpdateStatus(svcs.Orders, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", controllers.SupplierList(svcs.Suppliers, logg))
			r.Post("/", controllers.SupplierCreate(svcs.Suppliers, logg))
			r.Get("/{supplierId}", controllers.SupplierDetail(svcs.Suppliers, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/inventory-summary", controllers.ReportInventorySummary(svcs.Reports, logg))
			r.Get("/order-history", controllers.ReportOrderHistory(svcs.Reports, logg))
			r.Get("/supplier-performance", controllers.ReportSupplierPerformance(svcs.Reports, logg))
		})

		r.Put("/settings/password", controllers.SettingsChangePassword(svcs.Auth, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole("admin", logg))
			r.Get("/users", controllers.AdminUserList(svcs.Users, logg))
			r.Post("/users", controllers.AdminUserCreate(svcs.Users, logg))
			r.Get("/activity", controllers.AdminActivityList(svcs.Activity, logg))
		})
	})

	return r
}
