package contents

import (
	"context"

	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/pkg/errors"
)

// Problem is a stored row that readers skip.
type Problem struct {
	BookID    string `json:"bookId"`
	ContentID int    `json:"contentId"`
	Reason    string `json:"reason"`
}

// Audit reports every malformed content row of a book, or of all books when
// bookID is empty.
func (svc *Service) Audit(ctx context.Context, bookID string) ([]Problem, error) {
	rows := []*models.Content{}
	q := svc.db.
		NewSelect().
		Model(&rows).
		Order("c.book_id ASC", "c.content_id ASC")
	if bookID != "" {
		if err := checkBookID(bookID); err != nil {
			return nil, err
		}
		q = q.Where("c.book_id = ?", bookID)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	problems := []Problem{}
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			problems = append(problems, Problem{row.BookID, row.ContentID, err.Error()})
		}
	}
	return problems, nil
}
