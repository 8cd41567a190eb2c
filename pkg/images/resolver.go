package images

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/kmclassics/kmclassics/pkg/config"
	"github.com/kmclassics/kmclassics/pkg/errcodes"
	"github.com/pkg/errors"
)

var imageIDRE = regexp.MustCompile(`^[0-9]{1,9}$`)

// Resolver finds image files on disk. Files are named after their zero padded
// id followed by an underscore and a free-form name, e.g. "0012_page3.png".
type Resolver struct {
	dir     string
	padding int
}

func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{dir: cfg.ImagesDir, padding: cfg.ImageIDPadding}
}

func (r *Resolver) prefix(imageID string) (string, error) {
	if !imageIDRE.MatchString(imageID) {
		return "", errcodes.NotFound("Image")
	}
	n, err := strconv.Atoi(imageID)
	if err != nil {
		return "", errcodes.NotFound("Image")
	}
	return fmt.Sprintf("%0*d_", r.padding, n), nil
}

// ResolveImage returns the file name holding imageID. When several files
// share the prefix the lexically first one wins.
func (r *Resolver) ResolveImage(_ context.Context, imageID string) (string, error) {
	prefix, err := r.prefix(imageID)
	if err != nil {
		return "", err
	}
	matches, err := filepath.Glob(filepath.Join(r.dir, prefix+"*"))
	if err != nil {
		return "", errors.WithStack(err)
	}
	if len(matches) == 0 {
		return "", errcodes.NotFound("Image")
	}
	sort.Strings(matches)
	return filepath.Base(matches[0]), nil
}

// Path returns the absolute location of the file holding imageID.
func (r *Resolver) Path(ctx context.Context, imageID string) (string, error) {
	name, err := r.ResolveImage(ctx, imageID)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.dir, name), nil
}
