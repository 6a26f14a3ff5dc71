package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gopay/internal/pkg/pkguid"
)

// LoadConfig reads the YAML file at path; GOPAY_* environment variables
// override its keys.
func LoadConfig(path string) (pkgconfig.Config, error) {
	if path == "" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (a *App) initConfig(path string) {
	cfg, err := LoadConfig(path)
	if err != nil {
		slog.Error("failed to init config", "path", path, "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	a.config = cfg
	a.addCloser("Config", func(context.Context) error {
		return a.config.Close()
	})
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(int(a.config.GetInt("server.max_goroutine")))
	a.uuid = pkguid.NewUUID()
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins(a.config.GetArray("server.cors.allowed_origins")),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", pkgrouter.HeaderCorrelationID},
		AllowCredentials: true,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       durationOr(a.config.GetDuration("server.read_timeout"), 15*time.Second),
		WriteTimeout:      durationOr(a.config.GetDuration("server.write_timeout"), 15*time.Second),
	}
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

func allowedOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
