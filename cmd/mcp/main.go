package main

import (
	"context"
	"log"
	"os"

	"github.com/kmclassics/kmclassics/pkg/config"
	"github.com/kmclassics/kmclassics/pkg/database"
	"github.com/kmclassics/kmclassics/pkg/mcptools"
	"github.com/kmclassics/kmclassics/pkg/migrations"
	"github.com/kmclassics/kmclassics/pkg/version"
	"github.com/mark3labs/mcp-go/server"
	"github.com/robinjoseph08/golib/logger"
)

func main() {
	ctx := context.Background()
	errLog := log.New(os.Stderr, "kmclassics-mcp: ", log.LstdFlags)

	cfg, err := config.New()
	if err != nil {
		logger.New().Err(err).Fatal("config error")
	}
	cfg.DatabaseDebug = false

	db, err := database.New(cfg)
	if err != nil {
		logger.New().Err(err).Fatal("database error")
	}
	defer db.Close()

	if _, err := migrations.BringUpToDate(ctx, db); err != nil {
		logger.New().Err(err).Fatal("migrations error")
	}

	// Stdout carries the protocol from here on.
	s := mcptools.NewServer(db, version.Version)
	if err := server.ServeStdio(s, server.WithErrorLogger(errLog)); err != nil {
		errLog.Printf("server error: %v", err)
	}
}
