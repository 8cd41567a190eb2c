package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE contents (
				book_id TEXT NOT NULL,
				content_id INTEGER NOT NULL,
				volume_num INTEGER NOT NULL,
				sect_id TEXT NOT NULL,
				path TEXT NOT NULL DEFAULT '',
				level TEXT NOT NULL,
				depth TEXT NOT NULL DEFAULT '',
				sect_num TEXT NOT NULL DEFAULT '',
				chinese TEXT NOT NULL DEFAULT '',
				korean TEXT NOT NULL DEFAULT '',
				english TEXT NOT NULL DEFAULT '',
				image TEXT NOT NULL DEFAULT '',
				PRIMARY KEY (book_id, content_id)
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		// Children and root lookups are always scoped to one volume
		_, err = db.Exec(`CREATE INDEX ix_contents_book_volume_path ON contents(book_id, volume_num, path)`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE INDEX ix_contents_book_sect_id ON contents(book_id, sect_id)`)
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("DROP TABLE IF EXISTS contents")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
