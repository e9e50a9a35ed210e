package main

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"worddee/internal/apiclient"
	"worddee/internal/config"
	"worddee/internal/handlers"
	"worddee/internal/logger"
	"worddee/internal/metrics"
	"worddee/internal/practice"
	"worddee/internal/scheduler"
	"worddee/internal/security"
	"worddee/internal/service"
	"worddee/internal/templates"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.UsingDefaultSecret() {
		zlog.Warn("SESSION_SECRET is not set, using the development default")
	}

	reg := metrics.New()

	// Backend API client
	apiClient, err := apiclient.New(cfg.APIBaseURL, &http.Client{
		Timeout:   cfg.APITimeout,
		Transport: reg.InstrumentTransport(nil),
	})
	if err != nil {
		zlog.Fatal("Failed to create API client", zap.Error(err))
	}
	zlog.Info("Using backend API", zap.String("base_url", apiClient.BaseURL()))

	// Load templates
	tmpl, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		zlog.Fatal("Failed to load templates", zap.Error(err))
	}
	zlog.Info("Templates loaded successfully")

	// Initialize services
	store := practice.NewStore(cfg.SessionIdleTimeout)
	reg.RegisterSessionGauge(store.Len)

	practiceService := service.NewPracticeService(store, apiClient, zlog)
	dashboardService := service.NewDashboardService(apiClient, cfg.HistoryLimit, zlog)

	limiter := security.NewRateLimiter(cfg.SubmitRateLimit, cfg.SubmitRateWindow)

	// Initialize handlers
	middleware := handlers.NewMiddleware(
		security.NewSessionManager(cfg.SessionSecret, cfg.SessionDuration),
		security.NewCSRFGenerator(cfg.SessionSecret),
		limiter,
		zlog,
	)
	router := handlers.Router{
		Practice:   handlers.NewPracticeHandler(practiceService, middleware, tmpl, zlog),
		Dashboard:  handlers.NewDashboardHandler(dashboardService, tmpl, zlog),
		Middleware: middleware,
		Metrics:    reg,
		Logger:     zlog,
	}

	// Background cleanup
	sched := scheduler.New(zlog)
	if err := sched.Every("idle-sessions", cfg.SweepInterval, store); err != nil {
		zlog.Fatal("Failed to schedule session sweep", zap.Error(err))
	}
	if err := sched.Every("rate-limit-buckets", cfg.SweepInterval, scheduler.SweeperFunc(limiter.Cleanup)); err != nil {
		zlog.Fatal("Failed to schedule rate limiter cleanup", zap.Error(err))
	}
	sched.Start()

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.APITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("Server starting", zap.String("addr", "http://localhost"+addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("Graceful shutdown failed", zap.Error(err))
	}
	sched.Stop()
	store.Close()
}

// loadTemplates reads templates from disk when a path is configured and
// falls back to the embedded copies
func loadTemplates(templatesPath string) (*template.Template, error) {
	var fsys fs.FS = templates.FS
	if templatesPath != "" {
		fsys = os.DirFS(templatesPath)
	}
	return templates.Load(fsys)
}
