package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kmclassics/kmclassics/pkg/config"
	"github.com/kmclassics/kmclassics/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func setup(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0012_身形藏府圖.png"), pngHeader, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0012_copy.png"), pngHeader, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0120_other.txt"), []byte("plain text"), 0644))

	cfg := config.NewForTest()
	cfg.ImagesDir = dir
	return cfg
}

func TestResolveImage(t *testing.T) {
	r := NewResolver(setup(t))
	ctx := context.Background()

	name, err := r.ResolveImage(ctx, "12")
	require.NoError(t, err)
	assert.Equal(t, "0012_copy.png", name)

	name, err = r.ResolveImage(ctx, "0012")
	require.NoError(t, err)
	assert.Equal(t, "0012_copy.png", name)

	name, err = r.ResolveImage(ctx, "120")
	require.NoError(t, err)
	assert.Equal(t, "0120_other.txt", name)

	for _, id := range []string{"13", "1", "../0012", "*", ""} {
		_, err := r.ResolveImage(ctx, id)
		var e *errcodes.Error
		require.True(t, errors.As(err, &e), id)
		assert.Equal(t, http.StatusNotFound, e.HTTPCode, id)
	}
}

func newServer(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = errcodes.NewHandler().Handle
	RegisterRoutesWithGroup(e.Group("/api/images"), cfg)
	return e
}

func TestHandlers(t *testing.T) {
	e := newServer(setup(t))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/images/12", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"imageName":"0012_copy.png"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/images/404", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/images/12/file", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, pngHeader, rec.Body.Bytes())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/images/120/file", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/plain")
}
