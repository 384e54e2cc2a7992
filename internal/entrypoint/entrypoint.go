package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	auditRepo "github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/database/authors"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/database/categories"
	http_controllers "github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/scheduler"
	"github.com/mrlokans/library/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds everything the server needs, built from the configuration.
type App struct {
	Router *gin.Engine

	db        *database.Database
	audit     *audit.Service
	tasks     *tasks.Client
	scheduler *scheduler.AuditCleanupScheduler
	cancel    context.CancelFunc
}

// NewApp opens the database and wires repositories, the audit trail, the
// task queue and the cleanup scheduler into a router. Background workers
// are started immediately.
func NewApp(cfg *config.Config, version string) (*App, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	authorsRepo := authors.NewRepository(db.DB)
	booksRepo := books.NewRepository(db.DB)
	categoriesRepo := categories.NewRepository(db.DB)

	app := &App{db: db}

	routerCfg := http_controllers.RouterConfig{
		Database:           db,
		AuthorStore:        authorsRepo,
		BookStore:          booksRepo,
		CategoryStore:      categoriesRepo,
		AuthorLister:       authorsRepo,
		CategoryLister:     categoriesRepo,
		AuditRetentionDays: cfg.Audit.RetentionDays,
		DefaultPageSize:    cfg.Pagination.DefaultPageSize,
		Version:            version,
	}

	if cfg.Audit.Enabled {
		app.audit = audit.NewService(auditRepo.NewRepository(db.DB))
		routerCfg.AuditService = app.audit
		routerCfg.AuditReader = app.audit
		log.Printf("Audit trail enabled (retention: %d days)", cfg.Audit.RetentionDays)
	} else {
		log.Printf("Audit trail disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel

	// Maintenance tasks live in a separate SQLite file next to the catalog,
	// so they need a file path even when the catalog runs on PostgreSQL.
	if cfg.Tasks.Enabled && cfg.Database.Path != "" {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		app.tasks, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("initialize task queue: %w", err)
		}

		var reporter tasks.MaintenanceLogger
		queues := []backlite.Queue{}
		if app.audit != nil {
			reporter = app.audit
			queues = append(queues, tasks.NewCleanupAuditEventsQueue(app.audit, reporter))
		}
		queues = append(queues, tasks.NewCheckDanglingReferencesQueue(booksRepo, reporter))
		app.tasks.Register(queues...)

		app.tasks.Start(ctx)
		routerCfg.TaskClient = app.tasks
	}

	if app.audit != nil && app.tasks != nil && cfg.Audit.CleanupSchedule != "" {
		app.scheduler = scheduler.NewAuditCleanupScheduler(app.tasks, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
		if err := app.scheduler.Start(ctx); err != nil {
			log.Printf("WARNING: audit cleanup scheduler not started: %v", err)
			app.scheduler = nil
		}
	}

	if cfg.HTTP.GinMode != "" {
		gin.SetMode(cfg.HTTP.GinMode)
	}
	app.Router = http_controllers.NewRouter(routerCfg)

	return app, nil
}

// Shutdown stops the scheduler and task workers and waits for pending
// audit writes.
func (a *App) Shutdown(ctx context.Context) {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.tasks != nil {
		a.tasks.Stop(ctx)
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.audit.Wait()
}

// Close releases the task queue and database handles.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.tasks != nil {
		if err := a.tasks.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}
	if err := a.db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is SIGINT, plain kill sends SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Background work stops after the last request has been served.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Library v%s", version)

	app, err := NewApp(cfg, version)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer app.Close()

	Serve(app.Router, cfg, app.Shutdown)
}
