package internal

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracker/internal/config"
	"tracker/internal/events"
	"tracker/internal/handler"
	"tracker/internal/server"
	"tracker/internal/store"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog/log"
)

// App is the HTTP service with its database and event publisher.
type App struct {
	cfg       *config.Config
	db        store.Database
	publisher events.Publisher
	server    *http.Server
	listener  net.Listener
}

// New connects the database and builds the HTTP server. A failed connection aborts in
// strict startup mode; in graceful mode the server is built over store.Unavailable.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := OpenDatabase(ctx, cfg.Database)
	if err != nil {
		if cfg.StartupMode == config.StartupModeStrict {
			return nil, errors.Wrap(err, "database connection")
		}
		log.Error().Err(err).Msg("database connection error; database routes will answer 503")
		db = store.Unavailable{Err: err}
	} else {
		log.Info().Msg("database connection established successfully")
	}

	pubCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	publisher, err := OpenPublisher(pubCtx, cfg)
	cancel()
	if err != nil {
		log.Warn().Err(err).Msg("event publisher unavailable; events will be dropped")
		publisher = events.Noop{}
	}

	srv := server.New(server.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
	}, db, server.Routers{
		Exercises: handler.NewExercises(db.Exercises(), publisher).WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes).Routes(),
		Users:     handler.NewUsers(db.Users(), publisher).WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes).Routes(),
	})

	return &App{
		cfg:       cfg,
		db:        db,
		publisher: publisher,
		server: &http.Server{
			Handler:           srv,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Listen binds the configured port.
func (a *App) Listen() (net.Addr, error) {
	ln, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return nil, errors.Wrapf(err, "listen on port %s", a.cfg.HTTP.Port)
	}
	a.listener = ln

	log.Info().Msgf("server is running on port: %s", a.cfg.HTTP.Port)
	return ln.Addr(), nil
}

// Serve accepts connections until Shutdown is called.
func (a *App) Serve() error {
	if a.listener == nil {
		return errors.New("serve called before listen")
	}
	if err := a.server.Serve(a.listener); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then closes the database and the publisher.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	var first error
	record := func(err error, msg string) {
		if err == nil {
			return
		}
		log.Error().Err(err).Msg(msg)
		if first == nil {
			first = errors.Wrap(err, msg)
		}
	}

	record(a.server.Shutdown(ctx), "shutdown http server")
	record(a.db.Close(ctx), "close database")
	record(a.publisher.Close(), "close publisher")

	return first
}

// Bootstrap runs the service until SIGINT/SIGTERM or a server error.
func Bootstrap(ctx context.Context, cfg *config.Config) error {
	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}

	if _, err := app.Listen(); err != nil {
		_ = app.Shutdown()
		return err
	}

	errs := make(chan error, 1)
	go func() {
		errs <- app.Serve()
		close(errs)
	}()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(exit)

	select {
	case err := <-errs:
		_ = app.Shutdown()
		return err
	case sig := <-exit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	return app.Shutdown()
}
