package contents

import (
	"strings"

	"github.com/kmclassics/kmclassics/pkg/models"
)

const pathSeparator = ","

// ChildPathOf returns the path every direct child of node is stored under.
func ChildPathOf(node *models.Content) string {
	if node.Path == "" {
		return node.SectID
	}
	return node.Path + pathSeparator + node.SectID
}

// IsLeaf reports whether level marks a node that never has children.
func IsLeaf(level string) bool {
	return level == models.LevelLeaf || level == models.LevelTerminal
}

// IsTopLevel reports whether level is the top-level division tag. Children of
// top-level nodes are flattened to their leaf text.
func IsTopLevel(level string) bool {
	return level == models.LevelDivision
}

// SplitPath returns the ancestor section ids encoded in path, root first.
func SplitPath(path string) []string {
	ids := []string{}
	for _, id := range strings.Split(path, pathSeparator) {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Ancestor identifies one ancestor of a node by the path it lives under and
// its own section id.
type Ancestor struct {
	Path   string
	SectID string
}

// AncestorPaths expands path into the ancestors it names. For "a,b,c" that is
// ("", a), ("a", b) and ("a,b", c).
func AncestorPaths(path string) []Ancestor {
	ids := SplitPath(path)
	ancestors := make([]Ancestor, 0, len(ids))
	for i, id := range ids {
		ancestors = append(ancestors, Ancestor{
			Path:   strings.Join(ids[:i], pathSeparator),
			SectID: id,
		})
	}
	return ancestors
}
