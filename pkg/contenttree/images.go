package contenttree

import (
	"context"
	"regexp"
	"sync"

	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const preloadConcurrency = 4

var imageRefRE = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)

type ImageRef struct {
	Alt string
	ID  string
}

// ParseImageRef extracts the image reference embedded in a node's image field,
// e.g. "![alt](12)".
func ParseImageRef(s string) (ImageRef, bool) {
	m := imageRefRE.FindStringSubmatch(s)
	if m == nil {
		return ImageRef{}, false
	}
	return ImageRef{Alt: m[1], ID: m[2]}, true
}

// ImageResolver maps an image id to the name of the file holding it.
type ImageResolver interface {
	ResolveImage(ctx context.Context, imageID string) (string, error)
}

// ImageCache remembers resolved image names for a session. Concurrent lookups
// of the same id share one resolution, and failures are not cached.
type ImageCache struct {
	resolver ImageResolver
	group    singleflight.Group

	mu    sync.RWMutex
	names map[string]string
}

func NewImageCache(resolver ImageResolver) *ImageCache {
	return &ImageCache{
		resolver: resolver,
		names:    map[string]string{},
	}
}

func (c *ImageCache) cached(imageID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name, ok := c.names[imageID]
	return name, ok
}

// Resolve returns the file name for imageID. The shared lookup runs detached
// from any one caller's cancellation; a caller whose ctx ends stops waiting
// without aborting it for the others.
func (c *ImageCache) Resolve(ctx context.Context, imageID string) (string, error) {
	if name, ok := c.cached(imageID); ok {
		return name, nil
	}
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(imageID, func() (interface{}, error) {
		if name, ok := c.cached(imageID); ok {
			return name, nil
		}
		name, err := c.resolver.ResolveImage(detached, imageID)
		if err != nil {
			return "", errors.WithStack(err)
		}
		c.mu.Lock()
		c.names[imageID] = name
		c.mu.Unlock()
		return name, nil
	})
	select {
	case <-ctx.Done():
		return "", errors.WithStack(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// ResolveNode resolves the image embedded in node, if any.
func (c *ImageCache) ResolveNode(ctx context.Context, node *models.Content) (string, bool, error) {
	ref, ok := ParseImageRef(node.Image)
	if !ok {
		return "", false, nil
	}
	name, err := c.Resolve(ctx, ref.ID)
	if err != nil {
		return "", true, err
	}
	return name, true, nil
}

// Preload resolves the images of every node in parallel so the first render
// doesn't wait on them one at a time.
func (c *ImageCache) Preload(ctx context.Context, nodes []*models.Content) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadConcurrency)
	for _, n := range nodes {
		ref, ok := ParseImageRef(n.Image)
		if !ok {
			continue
		}
		g.Go(func() error {
			_, err := c.Resolve(ctx, ref.ID)
			return err
		})
	}
	return errors.WithStack(g.Wait())
}
