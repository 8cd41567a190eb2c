package contents

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kmclassics/kmclassics/pkg/errcodes"
	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func checkBookID(bookID string) error {
	if !models.ValidBookID(bookID) {
		return errcodes.NotFound("Book")
	}
	return nil
}

// GetVolumeRoots returns the top-level nodes of a volume in document order.
// A volume without content yields an empty slice.
func (svc *Service) GetVolumeRoots(ctx context.Context, bookID string, volumeNum int) ([]*models.Content, error) {
	return svc.GetChildrenByPath(ctx, bookID, volumeNum, "")
}

// GetChildrenByPath returns the nodes stored directly under path. The empty
// path names the volume root.
func (svc *Service) GetChildrenByPath(ctx context.Context, bookID string, volumeNum int, path string) ([]*models.Content, error) {
	if err := checkBookID(bookID); err != nil {
		return nil, err
	}
	return svc.list(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("c.book_id = ?", bookID).
			Where("c.volume_num = ?", volumeNum).
			Where("c.path = ?", path)
	})
}

// GetChildren returns the direct children of parent. Leaf nodes are rejected
// without touching the database. Top-level divisions only list their leaf
// text.
func (svc *Service) GetChildren(ctx context.Context, bookID string, volumeNum int, parent *models.Content) ([]*models.Content, error) {
	if err := checkBookID(bookID); err != nil {
		return nil, err
	}
	if IsLeaf(parent.Level) {
		return nil, errcodes.InvalidArgument(fmt.Sprintf("Level %q has no children.", parent.Level))
	}
	childPath := ChildPathOf(parent)
	return svc.list(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.
			Where("c.book_id = ?", bookID).
			Where("c.volume_num = ?", volumeNum).
			Where("c.path = ?", childPath)
		if IsTopLevel(parent.Level) {
			q = q.Where("c.level = ?", models.LevelLeaf)
		}
		return q
	})
}

// GetNode looks a node up by its content id.
func (svc *Service) GetNode(ctx context.Context, bookID string, contentID int) (*models.Content, error) {
	if err := checkBookID(bookID); err != nil {
		return nil, err
	}
	node := &models.Content{}
	err := svc.db.
		NewSelect().
		Model(node).
		Where("c.book_id = ?", bookID).
		Where("c.content_id = ?", contentID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Content")
		}
		return nil, errors.WithStack(err)
	}
	if err := node.Validate(); err != nil {
		logger.FromContext(ctx).Err(err).Warn("malformed content row", logger.Data{"book_id": bookID})
		return nil, errcodes.NotFound("Content")
	}
	return node, nil
}

// GetAncestorChain returns the ancestors of a node, root first. Top-level
// nodes have none.
func (svc *Service) GetAncestorChain(ctx context.Context, bookID string, contentID int) ([]*models.Content, error) {
	node, err := svc.GetNode(ctx, bookID, contentID)
	if err != nil {
		return nil, err
	}
	ancestors := AncestorPaths(node.Path)
	if len(ancestors) == 0 {
		return []*models.Content{}, nil
	}
	return svc.list(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("c.book_id = ?", bookID).
			Where("c.volume_num = ?", node.VolumeNum).
			WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
				for _, a := range ancestors {
					q = q.WhereOr("(c.path = ? AND c.sect_id = ?)", a.Path, a.SectID)
				}
				return q
			})
	})
}

// ListVolumes returns the distinct volume numbers of a book in ascending
// order.
func (svc *Service) ListVolumes(ctx context.Context, bookID string) ([]int, error) {
	if err := checkBookID(bookID); err != nil {
		return nil, err
	}
	volumes := []int{}
	err := svc.db.
		NewSelect().
		Model((*models.Content)(nil)).
		ColumnExpr("DISTINCT c.volume_num").
		Where("c.book_id = ?", bookID).
		Order("c.volume_num ASC").
		Scan(ctx, &volumes)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return volumes, nil
}

// GetVolumeContents returns every node of a volume in document order.
func (svc *Service) GetVolumeContents(ctx context.Context, bookID string, volumeNum int) ([]*models.Content, error) {
	if err := checkBookID(bookID); err != nil {
		return nil, err
	}
	return svc.list(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("c.book_id = ?", bookID).
			Where("c.volume_num = ?", volumeNum)
	})
}

func (svc *Service) list(ctx context.Context, apply func(q *bun.SelectQuery) *bun.SelectQuery) ([]*models.Content, error) {
	rows := []*models.Content{}
	q := svc.db.
		NewSelect().
		Model(&rows).
		Order("c.content_id ASC")
	err := apply(q).Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return validRows(ctx, rows), nil
}

// validRows drops rows that don't fit the content model, logging each one.
func validRows(ctx context.Context, rows []*models.Content) []*models.Content {
	valid := rows[:0]
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			logger.FromContext(ctx).Err(err).Warn("skipping malformed content row", logger.Data{
				"book_id":    row.BookID,
				"content_id": row.ContentID,
			})
			continue
		}
		valid = append(valid, row)
	}
	return valid
}
