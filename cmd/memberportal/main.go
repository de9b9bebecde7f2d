package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"memberportal/internal/config"
	"memberportal/internal/http/handlers"
	applog "memberportal/internal/log"
	"memberportal/internal/repos"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		applog.Fail("config.load", err, nil)
		os.Exit(1)
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			applog.Fail("log.file.open", err, map[string]any{"path": cfg.LogFile})
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	applog.Init(applog.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Output: out})

	db, err := repos.OpenDB(ctx, cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		applog.Fail("db.open", err, map[string]any{"driver": cfg.DB.Driver})
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		created, err := repos.EnsureAdmin(ctx, db, cfg.Admin.Email, cfg.Admin.Password, time.Now())
		if err != nil {
			applog.Fail("admin.seed", err, map[string]any{"email": cfg.Admin.Email})
			os.Exit(1)
		}
		if created {
			applog.Event("admin.seed", map[string]any{"email": cfg.Admin.Email})
		}
	}

	app, deps := handlers.NewServer(cfg, db, out)

	go deps.Sessions.RunPruner(ctx, cfg.Session.PruneInterval)

	go func() {
		<-ctx.Done()
		applog.Event("server.shutdown", nil)
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			applog.Fail("server.shutdown", err, nil)
		}
	}()

	applog.Event("server.start", map[string]any{"port": cfg.Port, "driver": cfg.DB.Driver})
	if err := app.Listen(":" + cfg.Port); err != nil && !errors.Is(err, context.Canceled) {
		applog.Fail("server.listen", err, nil)
		os.Exit(1)
	}
}
