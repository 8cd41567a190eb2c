package database

import (
	"context"
	"database/sql/driver"
	"math/rand"
	"strings"
	"time"
)

const (
	retryBaseDelay = 50 * time.Millisecond
	retryMaxDelay  = 2 * time.Second
)

// busyPatterns covers the messages of both modernc.org/sqlite and
// mattn/go-sqlite3 for SQLITE_BUSY (5) and SQLITE_LOCKED (6).
var busyPatterns = []string{
	"database is locked",
	"database table is locked",
	"SQLITE_BUSY",
	"SQLITE_LOCKED",
	"(5)",
	"(6)",
}

func isBusyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, p := range busyPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// backoff retries an operation while SQLite reports lock contention. Any other
// error is returned immediately.
type backoff struct {
	maxRetries int
}

func (b backoff) delay(attempt int) time.Duration {
	d := retryBaseDelay * time.Duration(1<<attempt)
	d += time.Duration(rand.Int63n(int64(d / 4)))
	if d > retryMaxDelay {
		d = retryMaxDelay
	}
	return d
}

func (b backoff) do(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if !isBusyError(err) || attempt >= b.maxRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.delay(attempt)):
		}
	}
}

type retryConnector struct {
	connector driver.Connector
	backoff   backoff
}

func newRetryConnector(connector driver.Connector, maxRetries int) *retryConnector {
	return &retryConnector{connector: connector, backoff: backoff{maxRetries: maxRetries}}
}

func (rc *retryConnector) Connect(ctx context.Context) (driver.Conn, error) {
	conn, err := rc.connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return &retryConn{Conn: conn, backoff: rc.backoff}, nil
}

func (rc *retryConnector) Driver() driver.Driver {
	return rc.connector.Driver()
}

type retryConn struct {
	driver.Conn
	backoff backoff
}

func (c *retryConn) Prepare(query string) (driver.Stmt, error) {
	return c.PrepareContext(context.Background(), query)
}

func (c *retryConn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	var stmt driver.Stmt
	var err error
	if p, ok := c.Conn.(driver.ConnPrepareContext); ok {
		stmt, err = p.PrepareContext(ctx, query)
	} else {
		stmt, err = c.Conn.Prepare(query)
	}
	if err != nil {
		return nil, err
	}
	return &retryStmt{Stmt: stmt, backoff: c.backoff}, nil
}

func (c *retryConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	var tx driver.Tx
	err := c.backoff.do(ctx, func() error {
		var err error
		if b, ok := c.Conn.(driver.ConnBeginTx); ok {
			tx, err = b.BeginTx(ctx, opts)
		} else {
			tx, err = c.Conn.Begin() //nolint:staticcheck // fallback for drivers without BeginTx
		}
		return err
	})
	return tx, err
}

func (c *retryConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	e, ok := c.Conn.(driver.ExecerContext)
	if !ok {
		return nil, driver.ErrSkip
	}
	var res driver.Result
	err := c.backoff.do(ctx, func() error {
		var err error
		res, err = e.ExecContext(ctx, query, args)
		return err
	})
	return res, err
}

func (c *retryConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	q, ok := c.Conn.(driver.QueryerContext)
	if !ok {
		return nil, driver.ErrSkip
	}
	var rows driver.Rows
	err := c.backoff.do(ctx, func() error {
		var err error
		rows, err = q.QueryContext(ctx, query, args)
		return err
	})
	return rows, err
}

func (c *retryConn) Ping(ctx context.Context) error {
	if p, ok := c.Conn.(driver.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (c *retryConn) ResetSession(ctx context.Context) error {
	if r, ok := c.Conn.(driver.SessionResetter); ok {
		return r.ResetSession(ctx)
	}
	return nil
}

func (c *retryConn) IsValid() bool {
	if v, ok := c.Conn.(driver.Validator); ok {
		return v.IsValid()
	}
	return true
}

type retryStmt struct {
	driver.Stmt
	backoff backoff
}

func namedValues(args []driver.Value) []driver.NamedValue {
	named := make([]driver.NamedValue, len(args))
	for i, v := range args {
		named[i] = driver.NamedValue{Ordinal: i + 1, Value: v}
	}
	return named
}

func plainValues(args []driver.NamedValue) []driver.Value {
	values := make([]driver.Value, len(args))
	for i, arg := range args {
		values[i] = arg.Value
	}
	return values
}

func (s *retryStmt) Exec(args []driver.Value) (driver.Result, error) {
	return s.ExecContext(context.Background(), namedValues(args))
}

func (s *retryStmt) Query(args []driver.Value) (driver.Rows, error) {
	return s.QueryContext(context.Background(), namedValues(args))
}

func (s *retryStmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	var res driver.Result
	err := s.backoff.do(ctx, func() error {
		var err error
		if e, ok := s.Stmt.(driver.StmtExecContext); ok {
			res, err = e.ExecContext(ctx, args)
		} else {
			res, err = s.Stmt.Exec(plainValues(args)) //nolint:staticcheck // fallback for legacy drivers
		}
		return err
	})
	return res, err
}

func (s *retryStmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	var rows driver.Rows
	err := s.backoff.do(ctx, func() error {
		var err error
		if q, ok := s.Stmt.(driver.StmtQueryContext); ok {
			rows, err = q.QueryContext(ctx, args)
		} else {
			rows, err = s.Stmt.Query(plainValues(args)) //nolint:staticcheck // fallback for legacy drivers
		}
		return err
	})
	return rows, err
}
