// Package api exposes the REST surface: routes, handlers and the JSON error
// contract.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rumbahq/rumba/internal/auth"
	"github.com/rumbahq/rumba/internal/middleware"
	"github.com/rumbahq/rumba/internal/service"
	"github.com/rumbahq/rumba/internal/storage"
)

// API holds the services the handlers dispatch to.
type API struct {
	authSvc    *service.AuthService
	eventSvc   *service.EventService
	expenseSvc *service.ExpenseService
	reportSvc  *service.ReportService
	store      storage.Store
	jwt        *auth.JWTManager

	// dev controls whether 500 responses carry error detail.
	dev bool
}

// Config bundles the dependencies for the router.
type Config struct {
	AuthService    *service.AuthService
	EventService   *service.EventService
	ExpenseService *service.ExpenseService
	ReportService  *service.ReportService
	Store          storage.Store
	JWTManager     *auth.JWTManager
	Development    bool
}

// NewRouter wires all routes and middleware and returns the root handler.
func NewRouter(cfg Config) http.Handler {
	a := &API{
		authSvc:    cfg.AuthService,
		eventSvc:   cfg.EventService,
		expenseSvc: cfg.ExpenseService,
		reportSvc:  cfg.ReportService,
		store:      cfg.Store,
		jwt:        cfg.JWTManager,
		dev:        cfg.Development,
	}

	requireAuth := middleware.RequireAuth(a.jwt, a.store)

	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.CORS)

	r.Get("/", a.handleRoot)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Metrics)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", a.handleRegister)
			r.Post("/login", a.handleLogin)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/verify", a.handleCurrentUser)
				r.Get("/profile", a.handleCurrentUser)
				r.Put("/profile", a.handleUpdateProfile)
				r.Post("/change-password", a.handleChangePassword)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/events", a.handleListEvents)
			r.Post("/events", a.handleCreateEvent)
			r.Get("/events/{id}", a.handleGetEvent)
			r.Put("/events/{id}", a.handleUpdateEvent)
			r.Delete("/events/{id}", a.handleDeleteEvent)

			r.Get("/events/{id}/expenses", a.handleListExpenses)
			r.Post("/events/{id}/expenses", a.handleCreateExpense)
			r.Get("/expenses/{id}", a.handleGetExpense)
			r.Put("/expenses/{id}", a.handleUpdateExpense)
			r.Delete("/expenses/{id}", a.handleDeleteExpense)

			r.Get("/financial-summary", a.handleFinancialSummary)
			r.Get("/monthly-performance", a.handleMonthlyPerformance)
			r.Get("/event-performance", a.handleEventPerformance)
			r.Get("/expense-breakdown", a.handleExpenseBreakdown)

			r.Get("/database/health", a.handleDatabaseHealth)
		})
	})

	return r
}
