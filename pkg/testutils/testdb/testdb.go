// Package testdb builds throwaway databases for tests. It is kept apart from
// testutils so the server does not link the testing package.
package testdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/kmclassics/kmclassics/pkg/migrations"
	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/kmclassics/kmclassics/pkg/testutils"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// NewDB returns a migrated in-memory database that is closed when the test
// ends.
func NewDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		db.Close()
	})

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	return db
}

// NewSeededDB returns a database loaded with the fixture books and contents.
func NewSeededDB(t *testing.T) *bun.DB {
	t.Helper()
	db := NewDB(t)
	require.NoError(t, testutils.Seed(context.Background(), db))
	return db
}

// InsertContents adds extra content rows for a single test.
func InsertContents(t *testing.T, db *bun.DB, rows ...*models.Content) {
	t.Helper()
	_, err := db.NewInsert().Model(&rows).Exec(context.Background())
	require.NoError(t, err)
}
