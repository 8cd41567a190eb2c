package books

import (
	"net/http"

	"github.com/kmclassics/kmclassics/pkg/errcodes"
	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService  *Service
	booksPerPage int
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	bookID := c.Param("bookId")
	if !models.ValidBookID(bookID) {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		BookID: &bookID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	limit := h.booksPerPage
	if params.Limit != nil {
		limit = *params.Limit
	}

	opts := ListBooksOptions{
		Limit:  &limit,
		Offset: &params.Offset,
		Search: params.Search,
		Filter: BookFilter{
			Author:   params.Author,
			Category: params.Category,
			Language: params.Language,
		},
	}

	books, total, err := h.bookService.ListBooksWithTotal(ctx, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, ListBooksResponse{books, total}))
}
