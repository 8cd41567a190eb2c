// Package client talks to the kmclassics HTTP API. It satisfies the
// contenttree fetcher and image resolver interfaces so a remote reader can
// drive a lazily expanded tree.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kmclassics/kmclassics/pkg/errcodes"
	"github.com/kmclassics/kmclassics/pkg/images"
	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New returns a client for the API served at baseURL, e.g.
// "http://localhost:3690". Requests carry no deadline of their own; callers
// bound them through ctx.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WithStack(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		payload := errcodes.Payload{}
		if err := json.Unmarshal(body, &payload); err != nil || payload.Error.Code == "" {
			return errors.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
		}
		payload.Error.StatusCode = resp.StatusCode
		return payload.AsError()
	}

	return errors.WithStack(json.Unmarshal(body, out))
}

func bookPath(bookID string, parts ...string) string {
	p := "/api/books/" + url.PathEscape(bookID)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

func (c *Client) Book(ctx context.Context, bookID string) (*models.Book, error) {
	book := &models.Book{}
	if err := c.get(ctx, bookPath(bookID), nil, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (c *Client) Volumes(ctx context.Context, bookID string) ([]int, error) {
	resp := struct {
		Volumes []int `json:"volumes"`
	}{}
	if err := c.get(ctx, bookPath(bookID, "volumes"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Volumes, nil
}

// VolumeRoots returns the top level nodes of a volume. An empty volume yields
// an empty slice even though the listing endpoint answers it with a 404.
func (c *Client) VolumeRoots(ctx context.Context, bookID string, volumeNum int) ([]*models.Content, error) {
	q := url.Values{}
	q.Set("volumeNum", strconv.Itoa(volumeNum))
	nodes := []*models.Content{}
	err := c.get(ctx, bookPath(bookID, "contents"), q, &nodes)
	if errors.Is(err, errcodes.NotFound("Content")) {
		return []*models.Content{}, nil
	}
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// Children fetches the direct children of node using its path coordinates.
func (c *Client) Children(ctx context.Context, node *models.Content) ([]*models.Content, error) {
	q := url.Values{}
	q.Set("volumeNum", strconv.Itoa(node.VolumeNum))
	q.Set("sectId", node.SectID)
	q.Set("level", node.Level)
	if node.Path != "" {
		q.Set("path", node.Path)
	}
	nodes := []*models.Content{}
	if err := c.get(ctx, bookPath(node.BookID, "children"), q, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (c *Client) Ancestors(ctx context.Context, bookID string, contentID int) ([]*models.Content, error) {
	nodes := []*models.Content{}
	err := c.get(ctx, bookPath(bookID, "content", strconv.Itoa(contentID), "ancestors"), nil, &nodes)
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// ResolveImage returns the file name the server stores imageID under.
func (c *Client) ResolveImage(ctx context.Context, imageID string) (string, error) {
	resp := images.ImageResponse{}
	if err := c.get(ctx, "/api/images/"+url.PathEscape(imageID), nil, &resp); err != nil {
		return "", err
	}
	return resp.ImageName, nil
}

// ImageURL is where the bytes of imageID can be downloaded.
func (c *Client) ImageURL(imageID string) string {
	return fmt.Sprintf("%s/api/images/%s/file", c.baseURL, url.PathEscape(imageID))
}
