package testutils

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

type fixturesResponse struct {
	Books    int `json:"books"`
	Contents int `json:"contents"`
}

// loadFixtures replaces all data with the fixture set.
// POST /test/fixtures.
func (h *handler) loadFixtures(c echo.Context) error {
	ctx := c.Request().Context()

	err := h.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := deleteAll(ctx, tx); err != nil {
			return err
		}
		return Seed(ctx, tx)
	})
	if err != nil {
		return errors.Wrap(err, "failed to load fixtures")
	}

	return c.JSON(http.StatusCreated, fixturesResponse{
		Books:    len(FixtureBooks()),
		Contents: len(FixtureContents()),
	})
}

// deleteAll removes every book and content row.
// DELETE /test/fixtures.
func (h *handler) deleteAll(c echo.Context) error {
	ctx := c.Request().Context()

	resp, err := deleteAll(ctx, h.db)
	if err != nil {
		return errors.Wrap(err, "failed to delete fixtures")
	}

	return c.JSON(http.StatusOK, resp)
}

func deleteAll(ctx context.Context, db bun.IDB) (fixturesResponse, error) {
	resp := fixturesResponse{}

	result, err := db.NewDelete().
		Model((*models.Content)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return resp, errors.WithStack(err)
	}
	n, _ := result.RowsAffected()
	resp.Contents = int(n)

	result, err = db.NewDelete().
		Model((*models.Book)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return resp, errors.WithStack(err)
	}
	n, _ = result.RowsAffected()
	resp.Books = int(n)

	return resp, nil
}
