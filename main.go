package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/decidebox/apiclient"
	"github.com/danielhkuo/decidebox/cliparse"
	"github.com/danielhkuo/decidebox/router"
	"github.com/danielhkuo/decidebox/views"
)

func main() {
	var err error

	// Values from .env never override the real environment
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Parse templates once at startup
	renderer, err := views.New()
	if err != nil {
		slog.Error("template parsing failed", "error", err)
		os.Exit(1)
	}

	client := apiclient.New(cfg.BackendURL, &http.Client{Timeout: cfg.BackendTimeout})
	slog.Info("Using backend", "url", client.BaseURL(), "timeout", cfg.BackendTimeout)

	// Create router
	handler := router.NewRouter(client, renderer, cfg)

	// Create server
	server := http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal, then let in-flight requests finish
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
