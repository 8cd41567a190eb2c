package images

import (
	"github.com/kmclassics/kmclassics/pkg/config"
	"github.com/labstack/echo/v4"
)

func RegisterRoutesWithGroup(g *echo.Group, cfg *config.Config) {
	h := &handler{
		resolver: NewResolver(cfg),
	}

	g.GET("/:imageId", h.retrieve)
	g.GET("/:imageId/file", h.file)
}
