package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/estatehub/estatehub/internal/auth"
	"github.com/estatehub/estatehub/internal/config"
	"github.com/estatehub/estatehub/internal/service"
	"github.com/estatehub/estatehub/internal/storage/sqlite"
	"github.com/estatehub/estatehub/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// The store handle is opened once and shared by every request for the
	// process lifetime.
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.AccessTokenSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	router := service.NewRouter(store, jwtManager, authenticator)

	// h2c allows HTTP/2 without TLS when running behind a terminating proxy.
	handler := h2c.NewHandler(router, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
