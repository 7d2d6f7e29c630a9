package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"translation-tracker/internal/config"
	"translation-tracker/internal/database"
	"translation-tracker/internal/middleware"
	"translation-tracker/internal/repository"
	"translation-tracker/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tracker",
		Short:        "Translation project tracker",
		SilenceUsage: true,
		RunE:         func(cmd *cobra.Command, args []string) error { return serve(cmd.Context()) },
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE:  func(cmd *cobra.Command, args []string) error { return serve(cmd.Context()) },
		},
		&cobra.Command{
			Use:   "sweep-tokens",
			Short: "Delete every session token, logging everybody out",
			RunE:  func(cmd *cobra.Command, args []string) error { return sweepTokens(cmd.Context()) },
		},
		&cobra.Command{
			Use:   "delete-user <id>",
			Short: "Delete a user by id",
			Args:  cobra.ExactArgs(1),
			RunE:  func(cmd *cobra.Command, args []string) error { return deleteUser(cmd.Context(), args[0]) },
		},
	)
	return root
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

func open() (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg := config.Load()
	log := newLogger(cfg)
	db, err := database.Open(cfg.DBURL, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func serve(ctx context.Context) error {
	cfg, log, db, err := open()
	if err != nil {
		return err
	}

	if _, err := database.SeedManager(ctx, db, cfg.AdminLogin, cfg.AdminPassword, log); err != nil {
		log.Error("seed default manager", "error", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable, login rate limit fails open", "addr", cfg.RedisAddr, "error", err)
		}
		cancel()
	}

	gin.SetMode(gin.ReleaseMode)
	r := server.New(db, cfg.TokenSecret, server.Options{
		SessionSecret: cfg.SessionSecret,
		CookieMaxAge:  cfg.CookieMaxAge,
		TemplatesGlob: cfg.TemplatesGlob,
		StaticDir:     "./web/static",
		Redis:         rdb,
		LoginRate: middleware.RateLimitConfig{
			Capacity:       cfg.LoginRateCapacity,
			RefillTokens:   1,
			RefillInterval: cfg.LoginRateRefill,
			Prefix:         "tracker:login",
		},
		Log: log,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func sweepTokens(ctx context.Context) error {
	_, log, db, err := open()
	if err != nil {
		return err
	}
	n, err := repository.NewTokenRepo(db).DeleteAll(ctx)
	if err != nil {
		return err
	}
	log.Info("session tokens deleted", "count", n)
	return nil
}

func deleteUser(ctx context.Context, id string) error {
	_, log, db, err := open()
	if err != nil {
		return err
	}
	n, err := repository.NewUserRepo(db).Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user %s not found", id)
	}
	log.Info("user deleted", "id", id)
	return nil
}
