package images

import (
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	resolver *Resolver
}

type ImageResponse struct {
	ImageName string `json:"imageName"`
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	name, err := h.resolver.ResolveImage(ctx, c.Param("imageId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, ImageResponse{name}))
}

func (h *handler) file(c echo.Context) error {
	ctx := c.Request().Context()

	path, err := h.resolver.Path(ctx, c.Param("imageId"))
	if err != nil {
		return errors.WithStack(err)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentType, mtype.String())
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return errors.WithStack(c.File(path))
}
