package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/notifier"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/router"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/session"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/tables"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/user"
	"github.com/ovaphlow/pitchfork/service-engagement/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting service-engagement")

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storeCfg := sheet.ConfigFromEnv()
	store, closeStore, err := sheet.Open(ctx, storeCfg, tables.Layout())
	if err != nil {
		sugar.Fatalf("open store: %v", err)
	}
	defer closeStore()
	sugar.Infow("tabular store ready", "driver", storeCfg.Driver, "timeout", storeCfg.Timeout)
	if storeCfg.Driver == "memory" {
		sugar.Warn("memory store in use, data is lost on exit")
	}

	notifyCfg := notifier.ConfigFromEnv()
	for kind, url := range notifyCfg.Endpoints {
		if url == "" {
			sugar.Warnw("workflow webhook not configured", "kind", kind)
		}
	}
	notify := notifier.New(notifyCfg, sugar.Named("notifier"))

	sessionCfg, err := session.ConfigFromEnv()
	if err != nil {
		sugar.Fatalf("session config: %v", err)
	}
	if os.Getenv("SESSION_SECRET") == "" {
		sugar.Warn("SESSION_SECRET not set, sessions will not survive a restart")
	}
	issuer := session.NewIssuer(sessionCfg)

	handlers := router.NewHandlers(store, notify, issuer, user.BcryptHasher{Cost: 12}, sugar)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8431"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           router.RegisterRoutes(sugar, handlers, issuer, router.RateLimitConfigFromEnv()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// run server in background
	go func() {
		sugar.Infow("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for in-flight requests
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
