package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/twocans72/photos-voting/cliparse"
	"github.com/twocans72/photos-voting/db"
	"github.com/twocans72/photos-voting/immich"
	"github.com/twocans72/photos-voting/logging"
	"github.com/twocans72/photos-voting/metrics"
	"github.com/twocans72/photos-voting/middleware"
	"github.com/twocans72/photos-voting/router"
)

// bootstrapAdmin is the account created on first start
const bootstrapAdmin = "admin"

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logging.Init(cfg.LogLevel, cfg.LogFormat)

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	store := db.NewStore(dbConn, nil)

	created, err := store.EnsureAdmin(context.Background(), bootstrapAdmin, cfg.AdminPassword)
	if err != nil {
		slog.Error("admin bootstrap failed", "error", err)
		os.Exit(1)
	}
	if created {
		slog.Info("Admin account created", "username", bootstrapAdmin)
	}

	client := immich.New(cfg.ImmichURL, cfg.ImmichAPIKey)
	reg := metrics.NewRegistry()

	// Create router
	handler := middleware.CORS(cfg.CORSOrigins)(router.NewRouter(store, cfg, client, reg, router.Options{}))

	// Create server
	server := http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Originals are streamed through the proxy
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "addr", server.Addr, "error", err)
		return
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	slog.Info("Listening", "port", cfg.Port, "immich", cfg.ImmichURL)
	if err := serve(&server, ln, ctrlc, shutdownGrace); err != nil {
		slog.Error("Server closed", "error", err)
		return
	}
	slog.Info("Server closed")
}

// shutdownGrace bounds how long in-flight requests may take to finish
const shutdownGrace = 10 * time.Second

// serve runs server on ln until stop fires, then shuts it down and returns
// only once in-flight requests have drained or grace has run out.
func serve(server *http.Server, ln net.Listener, stop <-chan os.Signal, grace time.Duration) error {
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		// Wait for Ctrl-C signal
		<-stop
		ctx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	err := server.Serve(ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-drained
	return nil
}
