package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/kmclassics/kmclassics/pkg/config"
	"github.com/kmclassics/kmclassics/pkg/database"
	"github.com/kmclassics/kmclassics/pkg/migrations"
	"github.com/kmclassics/kmclassics/pkg/server"
	"github.com/kmclassics/kmclassics/pkg/version"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logger.New()
	log.Info("starting kmclassics api", logger.Data{"version": version.Version})

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	if err := run(cfg, log); err != nil {
		log.Err(err).Fatal("api stopped")
	}
	log.Info("api stopped")
}

func run(cfg *config.Config, log logger.Logger) error {
	if info, err := os.Stat(cfg.ImagesDir); err != nil || !info.IsDir() {
		log.Warn("images directory is not readable; image lookups will fail", logger.Data{"path": cfg.ImagesDir})
	}

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Err(err).Error("database close error")
		}
	}()

	srv, err := server.New(cfg, db)
	if err != nil {
		return err
	}

	listener, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", srv.Addr)
	if err != nil {
		return errors.Wrapf(err, "failed to bind %s", srv.Addr)
	}
	log.Info("listening", logger.Data{"addr": listener.Addr().String(), "graphql": cfg.GraphQLEnabled})

	graceful := signals.Setup()
	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.WithStack(err)
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-graceful:
			log.Info("shutting down")
		case <-gctx.Done():
		}
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.WithStack(srv.Shutdown(ctx))
	})
	return g.Wait()
}

func openDatabase(cfg *config.Config, log logger.Logger) (*bun.DB, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	group, err := migrations.BringUpToDate(context.Background(), db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info("schema ready", logger.Data{"migrations": migrations.Describe(group)})
	return db, nil
}
