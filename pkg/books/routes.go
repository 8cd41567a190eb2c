package books

import (
	"github.com/kmclassics/kmclassics/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers book routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, cfg *config.Config) {
	h := &handler{
		bookService:  NewService(db),
		booksPerPage: cfg.BooksPerPage,
	}

	g.GET("/:bookId", h.retrieve)
	g.GET("", h.list)
}
