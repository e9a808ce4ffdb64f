package ui

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"goglm/domain/dataset"
	"goglm/internal"
	"goglm/ports"
)

// App is the HTTP surface: formula parsing and composition, the saved-model
// registry, and dataset analysis endpoints.
type App struct {
	router    *chi.Mux
	log       *internal.Logger
	modelRepo ports.ModelRepository // nil when no database is configured

	tableMu sync.RWMutex
	table   *dataset.Table
}

// Config holds UI application configuration
type Config struct {
	Port string
}

// NewApp creates the application. modelRepo may be nil; the model registry
// endpoints then report that no database is configured. table may be nil;
// analysis endpoints then require a dataset to be simulated or loaded first.
func NewApp(log *internal.Logger, modelRepo ports.ModelRepository, table *dataset.Table) *App {
	if log == nil {
		log = internal.DefaultLogger
	}
	app := &App{
		router:    chi.NewRouter(),
		log:       log,
		modelRepo: modelRepo,
		table:     table,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// Router exposes the handler for serving and tests.
func (a *App) Router() http.Handler {
	return a.router
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Formula endpoints (the core, no state required)
	a.router.Post("/api/formula/parse", a.handleParse)
	a.router.Post("/api/formula/compose", a.handleCompose)
	a.router.Post("/api/formula/sem", a.handleComposeSEM)

	// Saved-model registry
	a.router.Post("/api/models", a.handleCreateModel)
	a.router.Get("/api/models", a.handleListModels)
	a.router.Get("/api/models/{id}", a.handleGetModel)
	a.router.Delete("/api/models/{id}", a.handleDeleteModel)
	a.router.Get("/api/models/{id}/report", a.handleModelReport)

	// Dataset analysis
	a.router.Post("/api/dataset/simulate", a.handleSimulate)
	a.router.Get("/api/dataset", a.handleDatasetInfo)
	a.router.Post("/api/describe", a.handleDescribe)
	a.router.Post("/api/correlate", a.handleCorrelate)
	a.router.Post("/api/power", a.handlePower)
}

// Serve starts the HTTP server.
func (a *App) Serve(cfg Config) error {
	a.log.Info("listening on :%s", cfg.Port)
	return http.ListenAndServe(":"+cfg.Port, a.router)
}

func (a *App) currentTable() *dataset.Table {
	a.tableMu.RLock()
	defer a.tableMu.RUnlock()
	return a.table
}

func (a *App) setTable(t *dataset.Table) {
	a.tableMu.Lock()
	defer a.tableMu.Unlock()
	a.table = t
}
