package contenttree

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	mu      sync.Mutex
	calls   map[string]int
	fail    map[string]bool
	release chan struct{}
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{calls: map[string]int{}, fail: map[string]bool{}}
}

func (r *fakeResolver) ResolveImage(ctx context.Context, imageID string) (string, error) {
	r.mu.Lock()
	r.calls[imageID]++
	fail := r.fail[imageID]
	release := r.release
	r.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if fail {
		return "", errors.Errorf("image %s not found", imageID)
	}
	return fmt.Sprintf("page_%s.jpg", imageID), nil
}

func (r *fakeResolver) callCount(imageID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[imageID]
}

func TestParseImageRef(t *testing.T) {
	ref, ok := ParseImageRef("![身形藏府圖](12)")
	require.True(t, ok)
	assert.Equal(t, ImageRef{Alt: "身形藏府圖", ID: "12"}, ref)

	ref, ok = ParseImageRef("![](7)")
	require.True(t, ok)
	assert.Equal(t, "7", ref.ID)

	_, ok = ParseImageRef("")
	assert.False(t, ok)
	_, ok = ParseImageRef("[no bang](1)")
	assert.False(t, ok)
}

func TestImageCache_Resolve(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	c := NewImageCache(r)

	name, err := c.Resolve(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "page_12.jpg", name)

	name, err = c.Resolve(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "page_12.jpg", name)
	assert.Equal(t, 1, r.callCount("12"))
}

func TestImageCache_ConcurrentLookupsShareOneCall(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.release = make(chan struct{})
	c := NewImageCache(r)

	var wg sync.WaitGroup
	names := make([]string, 10)
	for i := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			names[i], _ = c.Resolve(ctx, "3")
		}()
	}
	close(r.release)
	wg.Wait()

	for _, n := range names {
		assert.Equal(t, "page_3.jpg", n)
	}
	assert.Equal(t, 1, r.callCount("3"))
}

func TestImageCache_CancelledCallerLeavesSharedLookupRunning(t *testing.T) {
	r := newFakeResolver()
	r.release = make(chan struct{})
	c := NewImageCache(r)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.Resolve(ctxA, "12")
		errA <- err
	}()
	require.Eventually(t, func() bool { return r.callCount("12") == 1 }, time.Second, time.Millisecond)

	type result struct {
		name string
		err  error
	}
	resB := make(chan result, 1)
	go func() {
		name, err := c.Resolve(context.Background(), "12")
		resB <- result{name, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(r.release)
	b := <-resB
	require.NoError(t, b.err)
	assert.Equal(t, "page_12.jpg", b.name)

	name, ok := c.cached("12")
	assert.True(t, ok)
	assert.Equal(t, "page_12.jpg", name)
	assert.Equal(t, 1, r.callCount("12"))
}

func TestImageCache_PreloadFailureDoesNotAbortOtherLookups(t *testing.T) {
	r := newFakeResolver()
	r.fail["7"] = true
	c := NewImageCache(r)

	err := c.Preload(context.Background(), []*models.Content{
		{ContentID: 1, Image: "![bad](7)"},
		{ContentID: 2, Image: "![good](8)"},
	})
	require.Error(t, err)

	name, err := c.Resolve(context.Background(), "8")
	require.NoError(t, err)
	assert.Equal(t, "page_8.jpg", name)
}

func TestImageCache_FailuresAreNotCached(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.fail["9"] = true
	c := NewImageCache(r)

	_, err := c.Resolve(ctx, "9")
	require.Error(t, err)

	r.mu.Lock()
	r.fail["9"] = false
	r.mu.Unlock()

	name, err := c.Resolve(ctx, "9")
	require.NoError(t, err)
	assert.Equal(t, "page_9.jpg", name)
	assert.Equal(t, 2, r.callCount("9"))
}

func TestImageCache_ResolveNode(t *testing.T) {
	ctx := context.Background()
	c := NewImageCache(newFakeResolver())

	name, ok, err := c.ResolveNode(ctx, &models.Content{Image: "![圖](5)"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "page_5.jpg", name)

	_, ok, err = c.ResolveNode(ctx, &models.Content{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestImageCache_Preload(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	c := NewImageCache(r)

	nodes := []*models.Content{
		{ContentID: 1, Image: "![a](1)"},
		{ContentID: 2},
		{ContentID: 3, Image: "![b](2)"},
		{ContentID: 4, Image: "![a again](1)"},
	}
	require.NoError(t, c.Preload(ctx, nodes))
	assert.Equal(t, 1, r.callCount("1"))
	assert.Equal(t, 1, r.callCount("2"))

	r.fail["7"] = true
	err := c.Preload(ctx, []*models.Content{{Image: "![x](7)"}})
	assert.Error(t, err)
}
