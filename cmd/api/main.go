package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/backend-kasir/internal/catalog"
	"github.com/noah-isme/backend-kasir/internal/checkout"
	"github.com/noah-isme/backend-kasir/internal/config"
	"github.com/noah-isme/backend-kasir/internal/customer"
	"github.com/noah-isme/backend-kasir/internal/debt"
	"github.com/noah-isme/backend-kasir/internal/events"
	"github.com/noah-isme/backend-kasir/internal/health"
	"github.com/noah-isme/backend-kasir/internal/obs"
	"github.com/noah-isme/backend-kasir/internal/order"
	"github.com/noah-isme/backend-kasir/internal/report"
	"github.com/noah-isme/backend-kasir/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	if cfg.MetricsEnabled {
		obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)
	}

	db, err := store.OpenBolt(cfg.DataPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DataPath).Msg("open store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("close store")
		}
	}()

	bus := &events.Bus{
		DB:        db,
		Notifiers: []events.Notifier{events.LogNotifier{Logger: logger}},
	}

	validate := validator.New()

	catalogService := &catalog.Service{DB: db}
	orderService := &order.Service{DB: db}
	debtService := &debt.Service{DB: db, Events: bus}
	checkoutService := &checkout.Service{
		Catalog:  catalogService,
		Orders:   orderService,
		Debts:    debtService,
		ShopName: cfg.ShopName,
		Events:   bus,
		Logger:   logger,
	}
	reportService := &report.Service{DB: db, Loc: cfg.ReportLocation, Events: bus}
	customerService := &customer.Service{DB: db}

	catalogHandler := &catalog.Handler{Service: catalogService, LowStockThreshold: cfg.LowStockThreshold, Validate: validate}
	checkoutHandler := &checkout.Handler{Service: checkoutService, Validate: validate}
	orderHandler := &order.Handler{Service: orderService}
	debtHandler := &debt.Handler{Service: debtService, Validate: validate}
	reportHandler := &report.Handler{Service: reportService, Validate: validate}
	customerHandler := &customer.Handler{Service: customerService}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.MetricsEnabled {
		httpMetrics := obs.NewHTTPMetrics(cfg.MetricsNamespace, nil, nil)
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	healthHandler := health.Handler{Checker: storeChecker{db: db}}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Route("/products", func(p chi.Router) {
			p.Get("/", catalogHandler.List)
			p.Post("/", catalogHandler.Create)
			p.Get("/low-stock", catalogHandler.LowStock)
			p.Get("/barcode/{code}", catalogHandler.ByBarcode)
			p.Get("/{id}", catalogHandler.Get)
			p.Put("/{id}", catalogHandler.Update)
		})

		v.Post("/checkout", checkoutHandler.Checkout)

		v.Get("/orders", orderHandler.List)
		v.Get("/orders/{id}", orderHandler.Get)

		v.Route("/debts", func(d chi.Router) {
			d.Get("/", debtHandler.List)
			d.Get("/{id}", debtHandler.Get)
			d.Post("/{id}/payments", debtHandler.Pay)
		})

		v.Get("/reports", reportHandler.Get)
		v.Get("/disbursements", reportHandler.ListDisbursements)
		v.Post("/disbursements", reportHandler.CreateDisbursement)

		v.Get("/customers", customerHandler.List)
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("shop", cfg.ShopName).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	}()

	<-done
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown server")
	}
	logger.Info().Msg("server stopped")
}

type storeChecker struct {
	db *store.Bolt
}

func (c storeChecker) PingStore(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.db.Ping(ctx)
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
