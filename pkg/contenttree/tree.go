// Package contenttree keeps an expandable view of a volume's content tree,
// fetching one level of children at a time as nodes are opened.
package contenttree

import (
	"context"
	"sync"

	"github.com/kmclassics/kmclassics/pkg/contents"
	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/pkg/errors"
)

type State int

const (
	Collapsed State = iota
	Loading
	Expanded
	ExpandedEmpty
	Failed
)

func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Loading:
		return "loading"
	case Expanded:
		return "expanded"
	case ExpandedEmpty:
		return "expanded_empty"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ChildFetcher loads the direct children of a node.
type ChildFetcher interface {
	Children(ctx context.Context, node *models.Content) ([]*models.Content, error)
}

type nodeState struct {
	expanded bool
	loading  bool
	fetched  bool
	children []*models.Content
	err      error
}

func (ns *nodeState) state() State {
	switch {
	case !ns.expanded:
		return Collapsed
	case ns.loading:
		return Loading
	case ns.err != nil:
		return Failed
	case len(ns.children) == 0:
		return ExpandedEmpty
	default:
		return Expanded
	}
}

// Tree is the view of one book volume. It is safe for concurrent use; toggles
// on different nodes proceed independently.
type Tree struct {
	fetcher ChildFetcher
	roots   []*models.Content

	mu    sync.Mutex
	nodes map[int]*nodeState
}

func NewTree(fetcher ChildFetcher, roots []*models.Content) *Tree {
	return &Tree{
		fetcher: fetcher,
		roots:   roots,
		nodes:   map[int]*nodeState{},
	}
}

func (t *Tree) Roots() []*models.Content {
	return t.roots
}

func (t *Tree) nodeLocked(contentID int) *nodeState {
	ns, ok := t.nodes[contentID]
	if !ok {
		ns = &nodeState{}
		t.nodes[contentID] = ns
	}
	return ns
}

// Toggle opens or closes node. Opening a node whose children were never
// fetched issues exactly one fetch; its result is cached even if the node is
// closed again before the fetch returns. A failed fetch leaves the node in
// Failed with no children until Retry is called. Leaves can't be toggled.
func (t *Tree) Toggle(ctx context.Context, node *models.Content) (State, error) {
	if contents.IsLeaf(node.Level) {
		return t.State(node.ContentID), nil
	}

	t.mu.Lock()
	ns := t.nodeLocked(node.ContentID)
	ns.expanded = !ns.expanded
	if !ns.expanded || ns.fetched || ns.loading {
		s := ns.state()
		t.mu.Unlock()
		return s, nil
	}
	ns.loading = true
	t.mu.Unlock()

	return t.fetch(ctx, node, ns)
}

// Retry discards a failed result and fetches the node's children again.
func (t *Tree) Retry(ctx context.Context, node *models.Content) (State, error) {
	t.mu.Lock()
	ns := t.nodeLocked(node.ContentID)
	if ns.loading || ns.err == nil {
		s := ns.state()
		t.mu.Unlock()
		return s, nil
	}
	ns.expanded = true
	ns.fetched = false
	ns.err = nil
	ns.loading = true
	t.mu.Unlock()

	return t.fetch(ctx, node, ns)
}

func (t *Tree) fetch(ctx context.Context, node *models.Content, ns *nodeState) (State, error) {
	children, err := t.fetcher.Children(ctx, node)

	t.mu.Lock()
	defer t.mu.Unlock()
	ns.loading = false
	ns.fetched = true
	if err != nil {
		ns.children = []*models.Content{}
		ns.err = errors.Wrapf(err, "failed to fetch children of content %d", node.ContentID)
		return ns.state(), ns.err
	}
	if children == nil {
		children = []*models.Content{}
	}
	ns.children = children
	ns.err = nil
	return ns.state(), nil
}

func (t *Tree) State(contentID int) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ns, ok := t.nodes[contentID]; ok {
		return ns.state()
	}
	return Collapsed
}

// Children returns the cached children of a node and whether they have been
// fetched. Collapsing a node keeps its cache.
func (t *Tree) Children(contentID int) ([]*models.Content, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ns, ok := t.nodes[contentID]
	if !ok || !ns.fetched {
		return nil, false
	}
	return ns.children, true
}

// Err returns the error of the node's last fetch.
func (t *Tree) Err(contentID int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ns, ok := t.nodes[contentID]; ok {
		return ns.err
	}
	return nil
}

// VisibleNode is one displayable row of the tree.
type VisibleNode struct {
	Node  *models.Content
	Depth int
	State State
}

// Visible flattens the tree depth first, descending only into expanded
// nodes.
func (t *Tree) Visible() []VisibleNode {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := []VisibleNode{}
	var walk func(nodes []*models.Content, depth int)
	walk = func(nodes []*models.Content, depth int) {
		for _, n := range nodes {
			ns, ok := t.nodes[n.ContentID]
			if !ok {
				out = append(out, VisibleNode{n, depth, Collapsed})
				continue
			}
			s := ns.state()
			out = append(out, VisibleNode{n, depth, s})
			if s == Expanded {
				walk(ns.children, depth+1)
			}
		}
	}
	walk(t.roots, 0)
	return out
}
