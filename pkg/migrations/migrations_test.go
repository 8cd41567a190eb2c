package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/migrate"
)

func newDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *bun.DB, name string) bool {
	t.Helper()
	var count int
	err := db.NewRaw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).
		Scan(context.Background(), &count)
	require.NoError(t, err)
	return count == 1
}

func TestBringUpToDate(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	group, err := BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.False(t, group.IsZero())
	assert.True(t, tableExists(t, db, "books"))
	assert.True(t, tableExists(t, db, "contents"))

	// A second run has nothing left to apply.
	group, err = BringUpToDate(ctx, db)
	require.NoError(t, err)
	assert.True(t, group.IsZero())
}

func TestRollback(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	_, err := BringUpToDate(ctx, db)
	require.NoError(t, err)

	migrator := NewMigrator(db)
	_, err = migrator.Rollback(ctx)
	require.NoError(t, err)
	assert.False(t, tableExists(t, db, "books"))
	assert.False(t, tableExists(t, db, "contents"))
}

func TestContentsUniquePerBook(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	_, err := BringUpToDate(ctx, db)
	require.NoError(t, err)

	insert := `INSERT INTO contents (book_id, content_id, volume_num, sect_id, level) VALUES (?, ?, 1, '1', 'A')`
	_, err = db.ExecContext(ctx, insert, "MC_00001", 1)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, insert, "MC_00002", 1)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, insert, "MC_00001", 1)
	assert.Error(t, err)
}

func TestPending(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	pending, err := Pending(ctx, db)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
	assert.Equal(t, "20260301000000", pending[0])

	_, err = BringUpToDate(ctx, db)
	require.NoError(t, err)

	pending, err = Pending(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "no new migrations", Describe(nil))
	assert.Equal(t, "no new migrations", Describe(&migrate.MigrationGroup{}))

	db := newDB(t)
	group, err := BringUpToDate(context.Background(), db)
	require.NoError(t, err)
	assert.Contains(t, Describe(group), "group #1")
}
