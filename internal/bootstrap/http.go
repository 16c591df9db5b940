package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aromabase/aromabase/config"
	"github.com/aromabase/aromabase/internal/gate"
	httpx "github.com/aromabase/aromabase/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, fmt.Errorf("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	gateCfg, err := appCfg.Gate.Build()
	if err != nil {
		return nil, fmt.Errorf("build gate config: %w", err)
	}

	roleMapper, err := BuildRoleMapper(appCfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("build role mapper: %w", err)
	}

	router := httpx.NewRouter(httpx.RouterServices{
		Auth:        cfg.Services.Auth,
		Users:       cfg.Services.Users,
		Perfumes:    cfg.Services.Perfumes,
		Brands:      cfg.Services.Brands,
		Notes:       cfg.Services.Notes,
		Submissions: cfg.Services.Submissions,
		Dashboard:   cfg.Services.Dashboard,
		Gate:        gate.New(gateCfg),
		Roles:       roleMapper,
		Cookies: httpx.CookieSettings{
			SessionName: appCfg.Auth.SessionCookieName,
			Domain:      appCfg.HTTP.CookieDomain,
			Secure:      appCfg.HTTP.CookieSecure,
		},
		CallbackURL: callbackURL(appCfg),
		Logger:      logger,
	})

	handler := httpx.Recover(logger)(httpx.Logging(logger)(router))

	addr := appCfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  appCfg.HTTP.ReadTimeout,
		WriteTimeout: appCfg.HTTP.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if serveErr := server.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", serveErr)
		}
	}()

	return server, nil
}

// callbackURL resolves the OAuth callback URL: the explicitly configured
// redirect wins, otherwise it is derived from the app base URL.
func callbackURL(cfg *config.AppConfig) string {
	if cfg.Auth.OAuth.RedirectURL != "" {
		return cfg.Auth.OAuth.RedirectURL
	}
	return strings.TrimSuffix(cfg.HTTP.BaseURL, "/") + "/auth/callback"
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Timeout time.Duration
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(cfg.Context, timeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
