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

	"go.uber.org/zap"

	"github.com/ekaya-inc/hfrl-gateway/pkg/config"
	"github.com/ekaya-inc/hfrl-gateway/pkg/crypto"
	"github.com/ekaya-inc/hfrl-gateway/pkg/handlers"
	"github.com/ekaya-inc/hfrl-gateway/pkg/llm"
	"github.com/ekaya-inc/hfrl-gateway/pkg/mcp"
	"github.com/ekaya-inc/hfrl-gateway/pkg/mcp/tools"
	"github.com/ekaya-inc/hfrl-gateway/pkg/metrics"
	"github.com/ekaya-inc/hfrl-gateway/pkg/middleware"
	"github.com/ekaya-inc/hfrl-gateway/pkg/models"
	"github.com/ekaya-inc/hfrl-gateway/pkg/repositories"
	"github.com/ekaya-inc/hfrl-gateway/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}

	logConfig := zap.NewProductionConfig()
	if cfg.Env == "local" || cfg.Debug {
		logConfig = zap.NewDevelopmentConfig()
	}
	logConfig.Level = level
	if cfg.Debug {
		logConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return logConfig.Build()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("listen_addr", cfg.ListenAddr()),
		zap.String("api_prefix", cfg.APIPrefix),
		zap.Duration("request_timeout", cfg.RequestTimeout()),
		zap.Bool("mcp_enabled", cfg.MCP.Enabled),
	)

	catalog, err := llm.LoadCatalog()
	if err != nil {
		return fmt.Errorf("load provider catalog: %w", err)
	}

	var sealer *crypto.KeySealer
	if cfg.SettingsSecret != "" {
		sealer, err = crypto.NewKeySealer(cfg.SettingsSecret)
		if err != nil {
			return fmt.Errorf("settings secret: %w", err)
		}
	}

	m := metrics.NewDefault()

	// Stores
	feedbackRepo := repositories.NewMemoryFeedbackRepository()
	feedbackService := services.NewFeedbackService(feedbackRepo, m, logger)
	analyticsService := services.NewAnalyticsService(feedbackRepo, logger)
	settingsService := services.NewSettingsService(sealer, logger)

	defaults := make(map[models.Provider]llm.ProviderDefaults, len(models.AllProviders))
	for _, p := range models.AllProviders {
		pc := cfg.Providers.Provider(p)
		defaults[p] = llm.ProviderDefaults{APIKey: pc.APIKey, BaseURL: pc.BaseURL}
		logger.Debug("Provider configured",
			zap.String("provider", string(p)),
			zap.Bool("default_key", pc.APIKey != ""),
			zap.String("base_url", pc.BaseURL))
	}
	dispatcher := llm.NewDispatcher(llm.DispatcherConfig{
		Timeout:  cfg.RequestTimeout(),
		Defaults: defaults,
	}, catalog, settingsService, m, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewModelsHandler(dispatcher, logger).RegisterRoutes(mux, cfg.APIPrefix)
	handlers.NewFeedbackHandler(feedbackService, logger).RegisterRoutes(mux, cfg.APIPrefix)
	handlers.NewAnalyticsHandler(analyticsService, logger).RegisterRoutes(mux, cfg.APIPrefix)
	handlers.NewSettingsHandler(settingsService, logger).RegisterRoutes(mux, cfg.APIPrefix)

	if cfg.MCP.Enabled {
		mcpServer := mcp.NewServer("hfrl-gateway", cfg.Version, &tools.Deps{
			Dispatcher:       dispatcher,
			FeedbackService:  feedbackService,
			AnalyticsService: analyticsService,
			Logger:           logger,
		}, logger)
		handlers.NewMCPHandler(mcpServer, logger, cfg.MCP).RegisterRoutes(mux)
	}

	mux.Handle("GET /metrics", m.Handler())

	handler := middleware.RequestLogger(logger)(
		middleware.CORS(cfg.CORSOrigins)(
			middleware.RequestMetrics(m)(mux),
		),
	)

	server := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting hfrl-gateway", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
