package migrations

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Migrations collects the schema steps registered by the files in this
// package. The contents table is populated offline and never written by the
// API, so schema changes are the only writes the migrator performs.
var Migrations = migrate.NewMigrations()

// NewMigrator returns a migrator bound to the registered schema steps.
func NewMigrator(db *bun.DB) *migrate.Migrator {
	return migrate.NewMigrator(db, Migrations)
}

// BringUpToDate creates the bookkeeping tables if needed and applies every
// pending step as one group. A zero group means nothing was pending.
func BringUpToDate(ctx context.Context, db *bun.DB) (*migrate.MigrationGroup, error) {
	m := NewMigrator(db)
	if err := m.Init(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	group, err := m.Migrate(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to apply migrations")
	}
	return group, nil
}

// Pending lists the names of registered steps that have not been applied.
func Pending(ctx context.Context, db *bun.DB) ([]string, error) {
	m := NewMigrator(db)
	if err := m.Init(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	ms, err := m.MigrationsWithStatus(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	names := []string{}
	for _, mig := range ms.Unapplied() {
		names = append(names, mig.Name)
	}
	return names, nil
}

// Describe renders a group for log lines and CLI output.
func Describe(group *migrate.MigrationGroup) string {
	if group == nil || group.IsZero() {
		return "no new migrations"
	}
	return fmt.Sprintf("group #%d (%s)", group.ID, group.Migrations.String())
}
