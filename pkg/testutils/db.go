package testutils

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Seed inserts the fixture books and contents.
func Seed(ctx context.Context, db bun.IDB) error {
	books := FixtureBooks()
	if _, err := db.NewInsert().Model(&books).Exec(ctx); err != nil {
		return errors.WithStack(err)
	}
	contents := FixtureContents()
	if _, err := db.NewInsert().Model(&contents).Exec(ctx); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

