// Package mcptools exposes the library read API as Model Context Protocol
// tools so assistants can browse books over stdio.
package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/kmclassics/kmclassics/pkg/books"
	"github.com/kmclassics/kmclassics/pkg/contents"
	"github.com/kmclassics/kmclassics/pkg/contenttree"
	"github.com/kmclassics/kmclassics/pkg/errcodes"
	"github.com/kmclassics/kmclassics/pkg/markup"
	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

const serverName = "kmclassics"

type tools struct {
	bookService    *books.Service
	contentService *contents.Service
}

// NewServer builds an MCP server with every tool registered.
func NewServer(db *bun.DB, version string) *server.MCPServer {
	t := &tools{
		bookService:    books.NewService(db),
		contentService: contents.NewService(db),
	}

	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("get_book",
			mcp.WithDescription("Get the bibliographic record of a book, e.g. MC_00008."),
			mcp.WithString("book_id", mcp.Required(), mcp.Description("Book id such as MC_00008")),
		),
		t.getBook,
	)
	s.AddTool(
		mcp.NewTool("search_books",
			mcp.WithDescription("Search books by title, author, abstract or keywords."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Text to look for")),
		),
		t.searchBooks,
	)
	s.AddTool(
		mcp.NewTool("list_volumes",
			mcp.WithDescription("List the volume numbers that have content for a book."),
			mcp.WithString("book_id", mcp.Required(), mcp.Description("Book id")),
		),
		t.listVolumes,
	)
	s.AddTool(
		mcp.NewTool("get_volume_roots",
			mcp.WithDescription("List the top level entries of a volume's table of contents."),
			mcp.WithString("book_id", mcp.Required(), mcp.Description("Book id")),
			mcp.WithNumber("volume_num", mcp.Required(), mcp.Description("Volume number, starting at 1")),
		),
		t.getVolumeRoots,
	)
	s.AddTool(
		mcp.NewTool("get_children",
			mcp.WithDescription("List the direct children of a table of contents entry."),
			mcp.WithString("book_id", mcp.Required(), mcp.Description("Book id")),
			mcp.WithNumber("content_id", mcp.Required(), mcp.Description("Content id of the parent entry")),
		),
		t.getChildren,
	)
	s.AddTool(
		mcp.NewTool("get_ancestors",
			mcp.WithDescription("List the entries enclosing a content entry, outermost first."),
			mcp.WithString("book_id", mcp.Required(), mcp.Description("Book id")),
			mcp.WithNumber("content_id", mcp.Required(), mcp.Description("Content id")),
		),
		t.getAncestors,
	)
	s.AddTool(
		mcp.NewTool("read_content",
			mcp.WithDescription("Read the parallel Chinese, Korean and English text of an entry as plain text."),
			mcp.WithString("book_id", mcp.Required(), mcp.Description("Book id")),
			mcp.WithNumber("content_id", mcp.Required(), mcp.Description("Content id")),
			mcp.WithBoolean("notes", mcp.Description("Inline annotation notes in parentheses"), mcp.DefaultBool(true)),
		),
		t.readContent,
	)

	return s
}

// result turns a service outcome into a tool result. Client-facing errors are
// reported inside the result; anything else is logged and reported generically.
func result(ctx context.Context, v interface{}, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		var e *errcodes.Error
		if errors.As(err, &e) {
			return mcp.NewToolResultError(e.Message), nil
		}
		logger.FromContext(ctx).Err(err).Error("mcp tool failed")
		return mcp.NewToolResultError("Internal Server Error"), nil
	}
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return mcp.NewToolResultText(string(body)), nil
}

func (t *tools) getBook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bookID, err := req.RequireString("book_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !models.ValidBookID(bookID) {
		return result(ctx, nil, errcodes.NotFound("Book"))
	}
	book, err := t.bookService.RetrieveBook(ctx, books.RetrieveBookOptions{BookID: &bookID})
	return result(ctx, book, err)
}

func (t *tools) searchBooks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	list, err := t.bookService.SearchBooks(ctx, query)
	if err == nil && len(list) == 0 {
		return mcp.NewToolResultText("No books found for: " + query), nil
	}
	return result(ctx, list, err)
}

func (t *tools) listVolumes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bookID, err := req.RequireString("book_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	volumes, err := t.contentService.ListVolumes(ctx, bookID)
	return result(ctx, contents.VolumesResponse{Volumes: volumes}, err)
}

func (t *tools) getVolumeRoots(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bookID, err := req.RequireString("book_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	volumeNum, err := req.RequireInt("volume_num")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	nodes, err := t.contentService.GetVolumeRoots(ctx, bookID, volumeNum)
	return result(ctx, nodes, err)
}

func (t *tools) node(ctx context.Context, req mcp.CallToolRequest) (*models.Content, error) {
	bookID, err := req.RequireString("book_id")
	if err != nil {
		return nil, errcodes.MissingParameter("book_id")
	}
	contentID, err := req.RequireInt("content_id")
	if err != nil {
		return nil, errcodes.MissingParameter("content_id")
	}
	return t.contentService.GetNode(ctx, bookID, contentID)
}

func (t *tools) getChildren(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	node, err := t.node(ctx, req)
	if err != nil {
		return result(ctx, nil, err)
	}
	children := []*models.Content{}
	if !contents.IsLeaf(node.Level) {
		children, err = t.contentService.GetChildren(ctx, node.BookID, node.VolumeNum, node)
	}
	return result(ctx, children, err)
}

func (t *tools) getAncestors(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bookID, err := req.RequireString("book_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contentID, err := req.RequireInt("content_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	chain, err := t.contentService.GetAncestorChain(ctx, bookID, contentID)
	return result(ctx, chain, err)
}

func (t *tools) readContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	node, err := t.node(ctx, req)
	if err != nil {
		return result(ctx, nil, err)
	}
	opts := markup.Options{ShowNotes: req.GetBool("notes", true)}
	return mcp.NewToolResultText(formatContent(node, opts)), nil
}

func formatContent(node *models.Content, opts markup.Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s vol. %d #%d (%s)\n", node.BookID, node.VolumeNum, node.ContentID, node.Level)
	for _, part := range []struct {
		label string
		text  string
	}{
		{"Chinese", node.Chinese},
		{"Korean", node.Korean},
		{"English", node.English},
	} {
		if part.text == "" {
			continue
		}
		fmt.Fprintf(&b, "\n[%s]\n%s\n", part.label, markup.Plain(part.text, opts))
	}
	if ref, ok := contenttree.ParseImageRef(node.Image); ok {
		fmt.Fprintf(&b, "\n[Image]\n%s (image %s)\n", ref.Alt, ref.ID)
	}
	return b.String()
}
