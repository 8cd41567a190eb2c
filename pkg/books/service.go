package books

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/kmclassics/kmclassics/pkg/errcodes"
	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	BookID  *string
	BookNum *int
}

// BookFilter narrows a listing to exact matches on the set fields.
type BookFilter struct {
	BookID   *string
	BookNum  *int
	Title    *string
	Author   *string
	Category *string
	Language *string
}

type ListBooksOptions struct {
	Limit  *int
	Offset *int
	Filter BookFilter
	Search *string

	includeTotal bool
}

type UpdateBookOptions struct {
	Columns []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBook inserts a book. With an empty BookID the next free book number
// is taken and the id is derived from it using prefix; otherwise the number is
// read back out of the given id.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book, prefix string) error {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if book.BookID == "" {
			var maxNum sql.NullInt64
			err := tx.NewSelect().
				Model((*models.Book)(nil)).
				ColumnExpr("MAX(b.book_num)").
				Scan(ctx, &maxNum)
			if err != nil {
				return errors.WithStack(err)
			}
			book.BookNum = int(maxNum.Int64) + 1
			id, err := models.FormatBookID(prefix, book.BookNum)
			if err != nil {
				return errcodes.ValidationError(err.Error())
			}
			book.BookID = id
		} else {
			_, num, err := models.ParseBookID(book.BookID)
			if err != nil {
				return errcodes.ValidationError(fmt.Sprintf("%q is not a valid book id", book.BookID))
			}
			book.BookNum = num
		}

		exists, err := tx.NewSelect().
			Model((*models.Book)(nil)).
			Where("b.book_id = ? OR b.book_num = ?", book.BookID, book.BookNum).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if exists {
			return errcodes.Conflict(fmt.Sprintf("Book %s already exists.", book.BookID))
		}

		_, err = tx.
			NewInsert().
			Model(book).
			Returning("*").
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book)

	if opts.BookID != nil {
		q = q.Where("b.book_id = ?", *opts.BookID)
	}
	if opts.BookNum != nil {
		q = q.Where("b.book_num = ?", *opts.BookNum)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	b, _, err := svc.listBooksWithTotal(ctx, opts)
	return b, errors.WithStack(err)
}

func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	opts.includeTotal = true
	return svc.listBooksWithTotal(ctx, opts)
}

func (svc *Service) listBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	books := []*models.Book{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&books).
		Order("b.book_num ASC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	f := opts.Filter
	if f.BookID != nil {
		q = q.Where("b.book_id = ?", *f.BookID)
	}
	if f.BookNum != nil {
		q = q.Where("b.book_num = ?", *f.BookNum)
	}
	if f.Title != nil {
		q = q.Where("b.title = ?", *f.Title)
	}
	if f.Author != nil {
		q = q.Where("b.author = ?", *f.Author)
	}
	if f.Category != nil {
		q = q.Where("b.category = ?", *f.Category)
	}
	if f.Language != nil {
		q = q.Where("b.language = ?", *f.Language)
	}
	if opts.Search != nil {
		q = applySearch(q, *opts.Search)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return books, total, nil
}

var searchColumns = []string{"b.title", "b.author", "b.abstract", "b.keywords"}

func applySearch(q *bun.SelectQuery, query string) *bun.SelectQuery {
	pattern := BuildLikePattern(query)
	if pattern == "" {
		return q
	}
	return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		for _, col := range searchColumns {
			q = q.WhereOr(col+" LIKE ? ESCAPE '"+likeEscape+"'", pattern)
		}
		return q
	})
}

// SearchBooks returns books whose title, author, abstract or keywords contain
// query. A blank query matches nothing.
func (svc *Service) SearchBooks(ctx context.Context, query string) ([]*models.Book, error) {
	if strings.TrimSpace(query) == "" {
		return []*models.Book{}, nil
	}
	return svc.ListBooks(ctx, ListBooksOptions{Search: &query})
}

func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	book.UpdatedAt = time.Now()
	columns := slices.Concat(opts.Columns, []string{"updated_at"})

	res, err := svc.db.
		NewUpdate().
		Model(book).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errcodes.NotFound("Book")
	}

	return nil
}

// DeleteBook removes a book's metadata. Its content rows are left alone.
func (svc *Service) DeleteBook(ctx context.Context, bookID string) error {
	res, err := svc.db.
		NewDelete().
		Model((*models.Book)(nil)).
		Where("book_id = ?", bookID).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if n == 0 {
		return errcodes.NotFound("Book")
	}
	return nil
}
