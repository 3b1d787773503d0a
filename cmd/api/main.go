package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ideabank/ideabank-backend/api/routes"
	"github.com/ideabank/ideabank-backend/internal/accounts"
	"github.com/ideabank/ideabank-backend/internal/auth"
	"github.com/ideabank/ideabank-backend/internal/categories"
	"github.com/ideabank/ideabank-backend/internal/ideas"
	"github.com/ideabank/ideabank-backend/internal/records"
	"github.com/ideabank/ideabank-backend/pkg/auth/session"
	"github.com/ideabank/ideabank-backend/pkg/config"
	"github.com/ideabank/ideabank-backend/pkg/logger"
	"github.com/ideabank/ideabank-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	txnMetrics := metrics.NewTransactionMetrics(prometheus.DefaultRegisterer)

	recs, err := records.Open(cfg, logg, txnMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to open record store", err)
		os.Exit(1)
	}

	sessions, err := session.NewManager(cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Users:          recs.Users,
		SessionManager: sessions,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	ideaService, err := ideas.NewService(ideas.ServiceParams{
		Ideas:  recs.Ideas,
		Config: recs.Config,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create idea service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categories.ServiceParams{
		Config: recs.Config,
		Ideas:  recs.Ideas,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	accountService, err := accounts.NewService(accounts.ServiceParams{
		Users:          recs.Users,
		Ideas:          ideaService,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create account service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"data_dir": cfg.Store.DataDir,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:     cfg,
			Logger:     logg,
			Records:    recs,
			Sessions:   sessions,
			Auth:       authService,
			Ideas:      ideaService,
			Categories: categoryService,
			Accounts:   accountService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
