package contents

import (
	"net/http"
	"strconv"

	"github.com/kmclassics/kmclassics/pkg/errcodes"
	"github.com/kmclassics/kmclassics/pkg/markup"
	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	modeContent  = "content"
	modeChildren = "children"
)

type handler struct {
	contentService *Service
}

func contentIDParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("contentId"))
	if err != nil {
		return 0, errcodes.NotFound("Content")
	}
	return id, nil
}

// contents lists the nodes stored under a path; no path means the volume
// roots.
func (h *handler) contents(c echo.Context) error {
	ctx := c.Request().Context()

	params := ContentsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	nodes, err := h.contentService.GetChildrenByPath(ctx, c.Param("bookId"), *params.VolumeNum, params.Path)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(nodes) == 0 {
		return errcodes.NotFound("Content")
	}

	return errors.WithStack(c.JSON(http.StatusOK, nodes))
}

func (h *handler) children(c echo.Context) error {
	ctx := c.Request().Context()

	params := ChildrenQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	parent := &models.Content{
		VolumeNum: *params.VolumeNum,
		SectID:    params.SectID,
		Path:      params.Path,
		Level:     params.Level,
	}
	nodes, err := h.contentService.GetChildren(ctx, c.Param("bookId"), parent.VolumeNum, parent)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, nodes))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	bookID := c.Param("bookId")
	contentID, err := contentIDParam(c)
	if err != nil {
		return err
	}

	params := ContentQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	node, err := h.contentService.GetNode(ctx, bookID, contentID)
	if err != nil {
		return errors.WithStack(err)
	}

	if params.Mode == modeContent {
		return errors.WithStack(c.JSON(http.StatusOK, node))
	}

	nodes := []*models.Content{}
	if !IsLeaf(node.Level) {
		nodes, err = h.contentService.GetChildren(ctx, bookID, node.VolumeNum, node)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	return errors.WithStack(c.JSON(http.StatusOK, nodes))
}

func (h *handler) ancestors(c echo.Context) error {
	ctx := c.Request().Context()
	contentID, err := contentIDParam(c)
	if err != nil {
		return err
	}

	nodes, err := h.contentService.GetAncestorChain(ctx, c.Param("bookId"), contentID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, nodes))
}

func (h *handler) render(c echo.Context) error {
	ctx := c.Request().Context()
	contentID, err := contentIDParam(c)
	if err != nil {
		return err
	}

	params := RenderQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	node, err := h.contentService.GetNode(ctx, c.Param("bookId"), contentID)
	if err != nil {
		return errors.WithStack(err)
	}

	opts := markup.Options{ShowNotes: *params.Notes}
	resp := RenderResponse{
		ContentID: node.ContentID,
		Chinese:   markup.Render(node.Chinese, opts),
		Korean:    markup.Render(node.Korean, opts),
		English:   markup.Render(node.English, opts),
	}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) volumes(c echo.Context) error {
	ctx := c.Request().Context()

	volumes, err := h.contentService.ListVolumes(ctx, c.Param("bookId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, VolumesResponse{volumes}))
}

func (h *handler) volume(c echo.Context) error {
	ctx := c.Request().Context()
	volumeNum, err := strconv.Atoi(c.Param("volumeNum"))
	if err != nil || volumeNum < 1 {
		return errcodes.ValidationTypeError(`"volumeNum" should be a positive integer`)
	}

	nodes, err := h.contentService.GetVolumeContents(ctx, c.Param("bookId"), volumeNum)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(nodes) == 0 {
		return errcodes.NotFound("Volume")
	}

	return errors.WithStack(c.JSON(http.StatusOK, nodes))
}
