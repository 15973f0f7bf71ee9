package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/julienschmidt/httprouter"
	"github.com/rgaultier/taxiresa/internal/api"
	"github.com/rgaultier/taxiresa/internal/auth"
	geocode "github.com/rgaultier/taxiresa/internal/client"
	"github.com/rgaultier/taxiresa/internal/ports"
	"github.com/rgaultier/taxiresa/internal/repository"
	"github.com/rgaultier/taxiresa/internal/service"
	"github.com/rgaultier/taxiresa/internal/suggest"
	"github.com/rgaultier/taxiresa/pkg/config"
	"github.com/rgaultier/taxiresa/pkg/health"
	"github.com/rgaultier/taxiresa/pkg/logger"
	"github.com/rgaultier/taxiresa/pkg/middleware"
)

type App struct {
	config  *config.Config
	log     *logger.Logger
	server  *http.Server
	db      *pgxpool.Pool
	suggest *suggest.Service
	cleanup []func()
}

func NewApp(cfg *config.Config, log *logger.Logger) *App {
	return &App{
		config: cfg,
		log:    log,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.setupDatabase(ctx); err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}

	if err := a.setupServer(); err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	return nil
}

func (a *App) setupDatabase(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	return nil
}

func (a *App) setupServer() error {
	services := a.setupServices()
	router := a.setupRouter(services)

	a.server = &http.Server{
		Addr:         a.config.Server.Address,
		Handler:      router,
		WriteTimeout: a.config.Server.WriteTimeout,
		ReadTimeout:  a.config.Server.ReadTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	return nil
}

type Services struct {
	BookingService ports.BookingService
	TriageService  ports.TriageService
	AuthService    *auth.Service
	SuggestService *suggest.Service
}

func (a *App) setupServices() Services {
	repo := repository.NewReservationRepository(a.db)

	geoClient := geocode.NewClient(
		geocode.WithBaseURL(a.config.Geocode.BaseURL),
	)
	suggestService := suggest.NewService(
		geoClient,
		a.config.Geocode.Country,
		a.config.Booking.SuggestDebounce,
		a.log,
	)
	a.suggest = suggestService

	authService := auth.NewService(auth.Config{
		AdminEmail:        a.config.Auth.AdminEmail,
		AdminPasswordHash: a.config.Auth.AdminPasswordHash,
		SessionTTL:        a.config.Auth.SessionTTL,
	})

	// Session changes are audited for the lifetime of the process.
	unsubscribe := authService.Subscribe(func(s *auth.Session) {
		if s == nil {
			a.log.Info("admin session closed")
			return
		}
		a.log.Info("admin session opened", "email", s.Email)
	})
	a.cleanup = append(a.cleanup, unsubscribe)

	return Services{
		BookingService: service.NewBookingService(repo, a.config.Booking.DriverPhone),
		TriageService:  service.NewTriageService(repo),
		AuthService:    authService,
		SuggestService: suggestService,
	}
}

func (a *App) setupRouter(services Services) http.Handler {
	router := httprouter.New()
	const versionPrefix = "/v1"

	router.HandlerFunc(http.MethodGet, versionPrefix+"/health", health.HealthGet())

	router.POST(versionPrefix+"/bookings", api.BookingHandler(services.BookingService))
	router.GET(versionPrefix+"/bookings/prefill", api.PrefillHandler())
	router.GET(versionPrefix+"/addresses", api.SuggestHandler(services.SuggestService))

	router.POST(versionPrefix+"/admin/login", api.LoginHandler(services.AuthService))
	router.POST(versionPrefix+"/admin/logout", api.LogoutHandler(services.AuthService))

	guard := services.AuthService.RequireSession
	router.GET(versionPrefix+"/admin/reservations", guard(api.ReservationsHandler(services.TriageService)))
	router.PATCH(versionPrefix+"/admin/reservations/:id", guard(api.UpdateStatusHandler(services.TriageService)))
	router.GET(versionPrefix+"/admin/reservations/:id/contact", guard(api.ContactHandler(services.TriageService)))

	var handler http.Handler = router
	handler = middleware.RequestLogging(a.log)(handler)
	handler = middleware.Recovery(a.log)(handler)
	return handler
}

func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		a.log.Info("starting server", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-shutdown:
		a.log.Info("starting graceful shutdown")
		return a.Shutdown(ctx)
	case <-ctx.Done():
		return a.Shutdown(ctx)
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	for _, fn := range a.cleanup {
		fn()
	}
	if a.suggest != nil {
		a.suggest.Close()
	}
	if a.db != nil {
		a.db.Close()
	}

	return nil
}

func main() {
	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "taxiresa-api",
	})

	app := NewApp(cfg, log)
	if err := app.Initialize(ctx); err != nil {
		log.Fatal("failed to initialize application", "error", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatal("application error", "error", err)
	}
}
