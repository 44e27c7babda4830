package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/signup-svc/internal/config"
	healthctrl "github.com/dropDatabas3/signup-svc/internal/http/controllers/health"
	"github.com/dropDatabas3/signup-svc/internal/http/router"
	svcauth "github.com/dropDatabas3/signup-svc/internal/http/services/auth"
	"github.com/dropDatabas3/signup-svc/internal/i18n"
	"github.com/dropDatabas3/signup-svc/internal/observability/logger"
	"github.com/dropDatabas3/signup-svc/internal/security/password"
	"github.com/dropDatabas3/signup-svc/internal/store"
)

func main() {
	var (
		flagConfigPath = flag.String("config", "", "ruta a config.yaml (fallback: $CONFIG_PATH o config.yaml)")
		flagEnvFile    = flag.String("env-file", ".env", "ruta a .env (si existe, se carga)")
	)
	flag.Parse()

	if *flagEnvFile != "" {
		if err := godotenv.Load(*flagEnvFile); err == nil {
			log.Printf("dotenv: cargado %s", *flagEnvFile)
		}
	}

	cfgPath := *flagConfigPath
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	defer logger.Sync()
	zl := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, cleanup, err := store.Open(ctx, store.Options{
		Driver: cfg.Storage.Driver,
		DSN:    cfg.Storage.DSN,
	})
	if err != nil {
		zl.Fatal("store open", logger.Err(err))
	}
	defer cleanup()

	catalog, err := i18n.Load(cfg.I18n.DefaultLocale)
	if err != nil {
		zl.Fatal("i18n catalog", logger.Err(err))
	}

	register := svcauth.NewRegisterService(svcauth.RegisterDeps{
		Users: users,
		Hash:  password.Default,
	})

	handler := router.New(router.Deps{
		Register:        register,
		Health:          healthctrl.NewHealthController(users),
		Catalog:         catalog,
		MetricsRegistry: prometheus.DefaultRegisterer,
		EnableMetrics:   cfg.Metrics.Enabled,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zl.Info("service up",
			logger.String("addr", cfg.Server.Addr),
			logger.String("env", cfg.App.Env),
			logger.String("storage", cfg.Storage.Driver),
			logger.String("default_locale", catalog.Default()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zl.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zl.Fatal("service stopped", logger.Err(err))
	}
	zl.Info("bye")
}
