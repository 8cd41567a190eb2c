package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/kmclassics/kmclassics/pkg/config"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

const memoryPath = ":memory:"

type queryLogHook struct {
	log logger.Logger
}

func (*queryLogHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (qh *queryLogHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	data := logger.Data{"duration_ms": time.Since(event.StartTime).Milliseconds()}
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		data["error"] = event.Err.Error()
	}
	qh.log.Debug(event.Query, data)
}

// New opens the SQLite database named in the config and returns a pooled
// handle. The handle is passed explicitly to every service.
func New(cfg *config.Config) (*bun.DB, error) {
	sqldb, err := openSQL(cfg)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if cfg.DatabaseDebug {
		db.AddQueryHook(&queryLogHook{logger.NewWithLevel("debug")})
	}

	if err := ping(db, cfg.DatabaseConnectRetryCount, cfg.DatabaseConnectRetryDelay); err != nil {
		return nil, err
	}

	for _, p := range pragmas(cfg) {
		if _, err := db.Exec(p); err != nil {
			return nil, errors.Wrapf(err, "failed to run %q", p)
		}
	}

	return db, nil
}

// openSQL wraps the sqlite connector so busy errors are retried per statement.
func openSQL(cfg *config.Config) (*sql.DB, error) {
	drvCtx, ok := sqliteshim.Driver().(driver.DriverContext)
	if !ok {
		return nil, errors.New("sqlite driver does not support OpenConnector")
	}
	connector, err := drvCtx.OpenConnector(cfg.DatabaseFilePath)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sqldb := sql.OpenDB(newRetryConnector(connector, cfg.DatabaseMaxRetries))
	if cfg.DatabaseFilePath == memoryPath {
		// Every new connection to :memory: is a fresh, empty database.
		sqldb.SetMaxOpenConns(1)
	}
	return sqldb, nil
}

func ping(db *bun.DB, attempts int, delay time.Duration) error {
	var err error
	for i := 0; i < max(attempts, 1); i++ {
		if _, err = db.Exec("SELECT 1"); err == nil {
			return nil
		}
		time.Sleep(delay)
	}
	return errors.WithStack(err)
}

func pragmas(cfg *config.Config) []string {
	p := []string{
		fmt.Sprintf("PRAGMA busy_timeout=%d", cfg.DatabaseBusyTimeout.Milliseconds()),
	}
	if cfg.DatabaseFilePath != memoryPath {
		// WAL lets readers proceed while the offline ingestion job writes.
		p = append(p, "PRAGMA journal_mode=WAL")
	}
	return p
}
