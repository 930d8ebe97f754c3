// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"

	"github.com/olegiv/staffreg/internal/config"
	"github.com/olegiv/staffreg/internal/content"
	"github.com/olegiv/staffreg/internal/handler"
	"github.com/olegiv/staffreg/internal/i18n"
	"github.com/olegiv/staffreg/internal/logging"
	"github.com/olegiv/staffreg/internal/render"
	"github.com/olegiv/staffreg/internal/session"
	"github.com/olegiv/staffreg/internal/version"
	"github.com/olegiv/staffreg/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "staffreg - staff registration portal\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STAFFREG_SESSION_SECRET   Session key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STAFFREG_SERVER_HOST      Listen host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STAFFREG_SERVER_PORT      Listen port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STAFFREG_ENV              development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STAFFREG_TIMEZONE         Zone used for age checks (default: Local)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STAFFREG_DEFAULT_LANG     es|en (default: es)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STAFFREG_REDIS_URL        Redis URL for session storage (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(info.Banner("staffreg"))
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Records logged with a request context carry chi's request ID
	logger := slog.New(logging.NewRequestHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("loading timezone: %w", err)
	}

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}
	i18n.SetDefaultLanguage(cfg.DefaultLang)

	// Session store: Redis when configured, memory otherwise
	var (
		sessionStore scs.Store
		storePinger  handler.Pinger
	)
	if cfg.UseRedisSessions() {
		opts := session.DefaultRedisStoreOptions()
		opts.URL = cfg.RedisURL
		opts.Prefix = cfg.RedisPrefix
		redisStore, err := session.NewRedisStore(opts)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				slog.Error("error closing redis connection", "error", err)
			}
		}()
		sessionStore = redisStore
		storePinger = redisStore
		slog.Info("session store initialized", "backend", "redis", "prefix", cfg.RedisPrefix)
	} else {
		slog.Info("session store initialized", "backend", "memory")
	}

	sessionManager := session.New(session.Options{
		Store:       sessionStore,
		Lifetime:    cfg.SessionLifetime,
		IdleTimeout: cfg.SessionIdleTimeout,
		IsDev:       cfg.IsDevelopment(),
	})

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	library, err := content.Load(web.Content, "content", i18n.DefaultLanguage())
	if err != nil {
		return fmt.Errorf("loading page content: %w", err)
	}
	slog.Info("page content loaded", "documents", library.Len())

	registrationHandler := handler.NewRegistrationHandler(
		session.NewStateStore(sessionManager, logger), renderer, library, loc)
	healthHandler := handler.NewHealthHandler(storePinger, info)

	router, err := newRouter(cfg, routerDeps{
		sessions:     sessionManager,
		registration: registrationHandler,
		health:       healthHandler,
	})
	if err != nil {
		return fmt.Errorf("building router: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-quit:
	}

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
