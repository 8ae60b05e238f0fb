package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecavus/stayhub-backend/internal/api"
	"github.com/ecavus/stayhub-backend/internal/apperr"
	"github.com/ecavus/stayhub-backend/internal/audit"
	"github.com/ecavus/stayhub-backend/internal/auth"
	"github.com/ecavus/stayhub-backend/internal/config"
	"github.com/ecavus/stayhub-backend/internal/db"
	"github.com/ecavus/stayhub-backend/internal/facade"
	"github.com/ecavus/stayhub-backend/internal/logger"
	"github.com/ecavus/stayhub-backend/internal/metrics"
	"github.com/ecavus/stayhub-backend/internal/models"
	"github.com/ecavus/stayhub-backend/internal/repository/postgres"
	"github.com/ecavus/stayhub-backend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	f := facade.New(repos.Users, repos.Amenities, repos.Places, repos.Reviews)

	wp := worker.NewPool(4)
	defer wp.Stop()
	rec := audit.NewRecorder(repos.AuditLogs, wp)

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	if err := bootstrapAdmin(ctx, cfg, f); err != nil {
		log.Error("bootstrap admin", "err", err)
		os.Exit(1)
	}

	metrics.Init()
	r := api.NewRouter(cfg, f, tm, rec)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// bootstrapAdmin seeds the first admin account. User creation is
// admin-only, so without this there would be no way to mint the first
// token with admin rights.
func bootstrapAdmin(ctx context.Context, cfg config.Config, f *facade.Facade) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	if _, err := f.GetUserByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !apperr.IsNotFound(err) {
		// Only "no such user" means we should seed; anything else (a dead
		// connection, say) must not be mistaken for an absent admin.
		return err
	}
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	u, err := models.NewUser("Admin", "User", cfg.AdminEmail, hash, true)
	if err != nil {
		return err
	}
	_, err = f.CreateUser(ctx, u)
	return err
}
