package main

import (
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/rumbahq/rumba/internal/api"
	"github.com/rumbahq/rumba/internal/auth"
	"github.com/rumbahq/rumba/internal/config"
	"github.com/rumbahq/rumba/internal/service"
	"github.com/rumbahq/rumba/internal/storage/sqlite"
	"github.com/rumbahq/rumba/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	router := api.NewRouter(api.Config{
		AuthService:    service.NewAuthService(authenticator, jwtManager, store, slog.Default()),
		EventService:   service.NewEventService(store),
		ExpenseService: service.NewExpenseService(store),
		ReportService:  service.NewReportService(store, cfg.RevenueMultiplier, cfg.MonthlyWindowMonths),
		Store:          store,
		JWTManager:     jwtManager,
		Development:    cfg.IsDevelopment(),
	})

	// h2c allows HTTP/2 without TLS for local and reverse-proxied deployments.
	handler := h2c.NewHandler(router, &http2.Server{})

	addr := cfg.ServerAddr()
	slog.Info("Server starting", "address", addr, "env", cfg.Env)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
