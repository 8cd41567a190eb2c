package gql

import (
	"github.com/kmclassics/kmclassics/pkg/books"
	"github.com/kmclassics/kmclassics/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup mounts the GraphQL endpoint at the group root.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, cfg *config.Config) error {
	schema, err := NewSchema(books.NewService(db), cfg)
	if err != nil {
		return errors.WithStack(err)
	}

	h := &handler{schema: schema}

	g.POST("", h.execute)
	return nil
}
