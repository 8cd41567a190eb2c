package contents

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers content routes on the books group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		contentService: NewService(db),
	}

	g.GET("/:bookId/volumes", h.volumes)
	g.GET("/:bookId/volume/:volumeNum", h.volume)
	g.GET("/:bookId/contents", h.contents)
	g.GET("/:bookId/children", h.children)
	g.GET("/:bookId/content/:contentId", h.retrieve)
	g.GET("/:bookId/content/:contentId/ancestors", h.ancestors)
	g.GET("/:bookId/content/:contentId/render", h.render)
}
