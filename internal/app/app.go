package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/finboard/finboard/internal/amqp"
	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/database"
	"github.com/finboard/finboard/pkg/dashboard"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg       config.Application
	db        *sql.DB
	notifier  *amqp.Client
	snapshots *dashboard.SnapshotStore
	router    *mux.Router
	srv       *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(cfg config.Application) (*Application, error) {
	// DB + migrations
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, cfg.Database); err != nil {
		db.Close()
		return nil, err
	}

	deps, err := BuildDependencies(db, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	var notifier *amqp.Client
	if cfg.AMQP.Enabled {
		notifier, err = amqp.NewClient(cfg.AMQP)
		if err != nil {
			db.Close()
			return nil, err
		}
		notifier.Forward(deps.EventBus)
		log.Infof("Forwarding dashboard events to AMQP exchange %s", cfg.AMQP.Exchange)
	}

	r := mux.NewRouter()

	// Middleware chain
	SetupMiddleware(r)

	// Routes
	RegisterRoutes(r, deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: cfg.Server.WriteTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Application{cfg: cfg, db: db, notifier: notifier, snapshots: deps.SnapshotStore, router: r, srv: srv}, nil
}

// Run starts the HTTP server and blocks until it fails or the process is
// interrupted, then shuts down gracefully.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// background workers outlive ctx so the notifier can flush after the server drained
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	workers := a.startWorkers(workersCtx)
	shutdownWorkers := func() {
		stopWorkers()
		_ = workers.Wait()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		shutdownWorkers()
		a.close()
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := a.srv.Shutdown(shutdownCtx)
	shutdownWorkers()
	a.close()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *Application) startWorkers(ctx context.Context) *errgroup.Group {
	var g errgroup.Group
	if a.notifier != nil {
		g.Go(func() error {
			a.notifier.Run(ctx)
			return nil
		})
	}
	if a.cfg.Dashboard.SweepInterval > 0 {
		g.Go(func() error {
			a.snapshots.Sweep(ctx, a.cfg.Dashboard.SweepInterval)
			return nil
		})
	}
	return &g
}

func (a *Application) close() {
	if a.notifier != nil {
		if err := a.notifier.Close(); err != nil {
			log.Warnf("failed to close AMQP connection: %v", err)
		}
	}
	if err := a.db.Close(); err != nil {
		log.Warnf("failed to close database: %v", err)
	}
}
