package mcptools

import (
	"context"
	"testing"

	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/kmclassics/kmclassics/pkg/testutils"
	"github.com/kmclassics/kmclassics/pkg/testutils/testdb"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *server.MCPServer {
	t.Helper()
	return NewServer(testdb.NewSeededDB(t), "test")
}

func call(t *testing.T, s *server.MCPServer, name string, args map[string]any) (string, bool) {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "tool %s", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text, res.IsError
}

func contentIDs(t *testing.T, text string) []int {
	t.Helper()
	nodes := []*models.Content{}
	require.NoError(t, json.Unmarshal([]byte(text), &nodes))
	ids := []int{}
	for _, n := range nodes {
		ids = append(ids, n.ContentID)
	}
	return ids
}

func TestToolsRegistered(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{
		"get_book", "search_books", "list_volumes", "get_volume_roots",
		"get_children", "get_ancestors", "read_content",
	} {
		assert.NotNil(t, s.GetTool(name), name)
	}
}

func TestGetBook(t *testing.T) {
	s := newTestServer(t)

	text, isErr := call(t, s, "get_book", map[string]any{"book_id": "MC_00009"})
	require.False(t, isErr, text)
	book := models.Book{}
	require.NoError(t, json.Unmarshal([]byte(text), &book))
	assert.Equal(t, "향약집성방", book.Title)

	text, isErr = call(t, s, "get_book", map[string]any{"book_id": "../etc"})
	assert.True(t, isErr)
	assert.Equal(t, "Book not found.", text)

	_, isErr = call(t, s, "get_book", map[string]any{})
	assert.True(t, isErr)
}

func TestSearchBooks(t *testing.T) {
	s := newTestServer(t)

	text, isErr := call(t, s, "search_books", map[string]any{"query": "향약"})
	require.False(t, isErr, text)
	list := []*models.Book{}
	require.NoError(t, json.Unmarshal([]byte(text), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "MC_00009", list[0].BookID)

	text, isErr = call(t, s, "search_books", map[string]any{"query": "없는책"})
	assert.False(t, isErr)
	assert.Equal(t, "No books found for: 없는책", text)
}

func TestNavigation(t *testing.T) {
	s := newTestServer(t)
	bookID := testutils.FixtureBookID

	text, isErr := call(t, s, "list_volumes", map[string]any{"book_id": bookID})
	require.False(t, isErr, text)
	assert.JSONEq(t, `{"volumes":[1,2]}`, text)

	// Numbers arrive as float64 from JSON-RPC.
	text, isErr = call(t, s, "get_volume_roots", map[string]any{"book_id": bookID, "volume_num": float64(1)})
	require.False(t, isErr, text)
	assert.Equal(t, []int{1, 5, 6, 10}, contentIDs(t, text))

	text, isErr = call(t, s, "get_children", map[string]any{"book_id": bookID, "content_id": float64(6)})
	require.False(t, isErr, text)
	assert.Equal(t, []int{7, 9}, contentIDs(t, text))

	text, isErr = call(t, s, "get_children", map[string]any{"book_id": bookID, "content_id": float64(8)})
	require.False(t, isErr, text)
	assert.Equal(t, []int{}, contentIDs(t, text))

	text, isErr = call(t, s, "get_ancestors", map[string]any{"book_id": bookID, "content_id": float64(8)})
	require.False(t, isErr, text)
	assert.Equal(t, []int{6, 7}, contentIDs(t, text))

	text, isErr = call(t, s, "get_children", map[string]any{"book_id": bookID, "content_id": float64(999)})
	assert.True(t, isErr)
	assert.Equal(t, "Content not found.", text)
}

func TestReadContent(t *testing.T) {
	s := newTestServer(t)
	bookID := testutils.FixtureBookID

	text, isErr := call(t, s, "read_content", map[string]any{"book_id": bookID, "content_id": float64(8)})
	require.False(t, isErr, text)
	assert.Contains(t, text, "[Chinese]\n뜻 (설명)\n")
	assert.Contains(t, text, "[English]\nmeaning\n")

	text, _ = call(t, s, "read_content", map[string]any{"book_id": bookID, "content_id": float64(8), "notes": false})
	assert.Contains(t, text, "[Chinese]\n뜻\n")

	text, _ = call(t, s, "read_content", map[string]any{"book_id": bookID, "content_id": float64(9)})
	assert.Contains(t, text, "[Image]\n身形藏府圖 (image 12)\n")

	text, isErr = call(t, s, "read_content", map[string]any{"book_id": bookID})
	assert.True(t, isErr)
	assert.Equal(t, `Missing Parameter "content_id"`, text)
}
