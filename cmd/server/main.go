package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mkamau/chamapool/internal/auth"
	"github.com/mkamau/chamapool/internal/middleware"
	"github.com/mkamau/chamapool/internal/service"
	"github.com/mkamau/chamapool/internal/storage/sqlite"
	"github.com/mkamau/chamapool/pkg/logging"
)

const sessionDuration = 24 * time.Hour

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/clubs.db")
	port := getEnv("PORT", "8080")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("JWT_SECRET must be set")
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	jwtManager := auth.NewJWTManager(secret, sessionDuration)
	capManager := auth.NewCapabilityManager(secret)
	authenticator := auth.NewPasswordAuthenticator(store)

	authSvc := service.NewAuthService(authenticator, jwtManager, slog.Default())
	clubSvc := service.NewClubService(store, capManager, slog.Default())

	mux := http.NewServeMux()
	service.RegisterRoutes(mux, authSvc, clubSvc, jwtManager)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Logging(middleware.CORS(mux))

	// h2c allows HTTP/2 without TLS behind a terminating proxy.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
