package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE books (
				book_id TEXT PRIMARY KEY,
				book_num INTEGER NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				title TEXT NOT NULL,
				volumes INTEGER,
				chars INTEGER,
				source TEXT,
				title_chinese TEXT,
				author TEXT,
				publish_year TEXT,
				translator TEXT,
				edition TEXT,
				language TEXT,
				physical_info TEXT,
				publisher TEXT,
				location TEXT,
				confidence_level TEXT,
				abstract TEXT,
				"references" TEXT,
				volume TEXT,
				translator_info TEXT,
				bibliographic_info TEXT,
				author_info TEXT,
				publication_info TEXT,
				classification TEXT,
				subject TEXT,
				keywords TEXT,
				ebooks TEXT,
				category TEXT,
				similars TEXT
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE UNIQUE INDEX ux_books_book_num ON books(book_num)`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`CREATE INDEX ix_books_title ON books(title COLLATE NOCASE)`)
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("DROP TABLE IF EXISTS books")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
