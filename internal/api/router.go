package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mindforge-ai/noesis/internal/api/handlers"
	mw "github.com/mindforge-ai/noesis/internal/api/middleware"
	"github.com/mindforge-ai/noesis/internal/buildconfig"
	"github.com/mindforge-ai/noesis/internal/config"
	"github.com/mindforge-ai/noesis/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the router and the reasoning engine for lifecycle management.
type App struct {
	Router       *chi.Mux
	Engine       *service.ReasoningEngine
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(logger *zap.Logger) (*App, error) {
	engine, err := service.NewReasoningEngine(logger)
	if err != nil {
		return nil, err
	}

	maxInput := config.MaxInputBytes()
	reasonHandler := handlers.NewReasonHandler(engine, maxInput)
	decisionHandler := handlers.NewDecisionHandler(engine.Decision(), maxInput)
	domainHandler := handlers.NewDomainHandler(engine)
	adminHandler := handlers.NewAdminHandler(engine)

	r := chi.NewRouter()
	app := &App{
		Router:    r,
		Engine:    engine,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health and metrics (no auth)
	r.Get("/health", healthHandler())
	r.Get("/metrics", app.metricsHandler())
	r.Get("/metrics/prometheus", promhttp.Handler().ServeHTTP)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/reason", reasonHandler.EvaluateAll)
		r.Post("/reason/{mode}", reasonHandler.Evaluate)
		r.Post("/decide", decisionHandler.Decide)

		r.Route("/domains", func(r chi.Router) {
			r.Get("/", domainHandler.List)
			r.Get("/mappings", domainHandler.Mappings)
			r.Post("/reason", domainHandler.Reason)
			r.Post("/transfer", domainHandler.Transfer)
			r.Post("/analogies", domainHandler.Analogies)
			r.Post("/abstractions", domainHandler.Abstractions)
			r.Post("/insights", domainHandler.Insights)
			r.Get("/{name}", domainHandler.Get)
		})

		// Registry mutation is token-gated.
		r.Route("/admin", func(r chi.Router) {
			r.Use(mw.TokenAuth(config.AdminToken()))
			r.Post("/rules", adminHandler.CreateRule)
			r.Get("/axioms", adminHandler.ListAxioms)
			r.Post("/axioms", adminHandler.CreateAxiom)
			r.Post("/modal-operators", adminHandler.CreateModalOperator)
			r.Post("/modal-worlds", adminHandler.CreateModalWorld)
			r.Post("/distributions", adminHandler.CreateDistribution)
			r.Post("/quantum-operators", adminHandler.CreateQuantumOperator)
			r.Post("/decision-options", adminHandler.CreateDecisionOption)
			r.Post("/decision-criteria", adminHandler.CreateDecisionCriterion)
			r.Post("/domains", adminHandler.CreateDomain)
		})
	})

	return app, nil
}

// NewRouter returns just the chi.Mux for callers that manage no lifecycle.
func NewRouter(logger *zap.Logger) (*chi.Mux, error) {
	app, err := NewApp(logger)
	if err != nil {
		return nil, err
	}
	return app.Router, nil
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"version": buildconfig.Version(),
			"commit":  buildconfig.Commit(),
		})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"reasoning":      app.Engine.GetPerformanceMetrics(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
			"build":      buildconfig.VersionInfo(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
