package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kmclassics/kmclassics/pkg/binder"
	"github.com/kmclassics/kmclassics/pkg/books"
	"github.com/kmclassics/kmclassics/pkg/config"
	"github.com/kmclassics/kmclassics/pkg/contents"
	"github.com/kmclassics/kmclassics/pkg/errcodes"
	"github.com/kmclassics/kmclassics/pkg/gql"
	"github.com/kmclassics/kmclassics/pkg/images"
	"github.com/kmclassics/kmclassics/pkg/testutils"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e, err := NewEcho(cfg, db)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

// NewEcho builds the router with every API route registered.
func NewEcho(cfg *config.Config, db *bun.DB) (*echo.Echo, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	api := e.Group("/api")

	// Book metadata and the content tree share the /books prefix.
	booksGroup := api.Group("/books")
	books.RegisterRoutesWithGroup(booksGroup, db, cfg)
	contents.RegisterRoutesWithGroup(booksGroup, db)

	images.RegisterRoutesWithGroup(api.Group("/images"), cfg)

	if cfg.GraphQLEnabled {
		if err := gql.RegisterRoutesWithGroup(api.Group("/graphql"), db, cfg); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if cfg.IsTest() {
		testutils.RegisterRoutes(e, db)
	}

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return e, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
