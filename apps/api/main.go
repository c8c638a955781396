package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	echoapi "github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
	emailsvc "github.com/trezcool/shule/services/email"
	eventsvc "github.com/trezcool/shule/services/events"
	logsvc "github.com/trezcool/shule/services/logger"
	rediscache "github.com/trezcool/shule/storage/cache/redis"
	dummydb "github.com/trezcool/shule/storage/database/dummy"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("API : %+v", err)
	}
}

func run() error {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	var mailSvc core.EmailService
	if conf.SendgridApiKey == "" {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	publisher, closeEvents, err := eventsvc.New(conf.Nats, logger)
	if err != nil {
		return errors.Wrap(err, "connecting to event broker")
	}
	defer func() {
		if err := closeEvents(); err != nil {
			logger.Error("closing event broker", err)
		}
	}()

	sessions, err := sessionStore(conf)
	if err != nil {
		return err
	}

	db, err := dummydb.Open()
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	if conf.Seed {
		if err := dummydb.Seed(db); err != nil {
			return errors.Wrap(err, "seeding database")
		}
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	app := school.New(school.Deps{
		Config:   conf,
		Logger:   logger,
		Mailer:   mailSvc,
		Events:   publisher,
		Sessions: sessions,
		Repos:    dummydb.NewRepositories(db),
	})

	ctx, stopTracker := context.WithCancel(context.Background())
	defer stopTracker()
	go app.Run(ctx)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(&echoapi.Options{
		Address:        conf.Server.Address,
		App:            app,
		SignalShutdown: func() { shutdown <- syscall.SIGTERM },
	})

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-serverErrors:
		return errors.Wrap(err, "server error")

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}
	return nil
}

func sessionStore(conf *core.Config) (session.Store, error) {
	switch conf.Session.Backend {
	case "", "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		client := rediscache.NewClient(conf.Session)
		if !rediscache.Healthy(context.Background(), client) {
			return nil, errors.Errorf("redis is unreachable at %s", conf.Session.RedisAddr)
		}
		return rediscache.NewSessionStore(client, conf.Server.JWTExpirationDelta), nil
	default:
		return nil, errors.Errorf("unknown session backend %q", conf.Session.Backend)
	}
}
