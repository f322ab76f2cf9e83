package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/openwims/wims-backend/api/routes"
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
	"github.com/openwims/wims-backend/pkg/migrate"
	"github.com/openwims/wims-backend/pkg/redis"
	"github.com/openwims/wims-backend/pkg/shutdown"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "wims"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "wims",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	hooks := &shutdown.Hooks{}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	hooks.Register("database", dbClient.Close)

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	hooks.Register("redis", redisClient.Close)

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	svcs, err := buildServices(cfg, logg, dbClient, sessionManager)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, registry, httpMetrics, svcs),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(stopCtx); err != nil {
		logg.Error(ctx, "http server shutdown", err)
	}
	if err := hooks.Run(stopCtx, logg); err != nil {
		logg.Error(ctx, "resource shutdown", err)
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, sessionManager *session.Manager) (routes.Services, error) {
	conn := dbClient.DB()

	activitySvc, err := activity.NewService(activity.ServiceParams{
		Repo:   activity.NewRepository(conn),
		Logger: logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(conn),
		SessionManager: sessionManager,
		Activity:       activitySvc,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	navigationSvc, err := navigation.NewService(navigation.ServiceParams{
		Store:  sessionManager,
		Config: cfg.Navigation,
	})
	if err != nil {
		return routes.Services{}, err
	}

	inventoryRepo := inventory.NewRepository(conn)
	inventorySvc, err := inventory.NewService(inventory.ServiceParams{
		Repo:     inventoryRepo,
		Activity: activitySvc,
	})
	if err != nil {
		return routes.Services{}, err
	}

	ordersRepo := orders.NewRepository(conn)
	ordersSvc, err := orders.NewService(orders.ServiceParams{
		Tx:       dbClient,
		Orders:   ordersRepo,
		Stock:    inventoryRepo,
		Activity: activitySvc,
	})
	if err != nil {
		return routes.Services{}, err
	}

	suppliersRepo := suppliers.NewRepository(conn)
	suppliersSvc, err := suppliers.NewService(suppliers.ServiceParams{
		Repo:     suppliersRepo,
		Activity: activitySvc,
	})
	if err != nil {
		return routes.Services{}, err
	}

	dashboardSvc, err := dashboard.NewService(dashboard.ServiceParams{
		Inventory: inventoryRepo,
		Orders:    ordersRepo,
		Suppliers: suppliersRepo,
	})
	if err != nil {
		return routes.Services{}, err
	}

	reportsSvc, err := reports.NewService(conn)
	if err != nil {
		return routes.Services{}, err
	}

	usersSvc, err := users.NewService(users.ServiceParams{
		Repo:           users.NewRepository(conn),
		Activity:       activitySvc,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:       authSvc,
		Navigation: navigationSvc,
		Dashboard:  dashboardSvc,
		Inventory:  inventorySvc,
		Orders:     ordersSvc,
		Suppliers:  suppliersSvc,
		Reports:    reportsSvc,
		Users:      usersSvc,
		Activity:   activitySvc,
	}, nil
}
