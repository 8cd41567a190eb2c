package contents

import (
	"testing"

	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestChildPathOf(t *testing.T) {
	assert.Equal(t, "42", ChildPathOf(&models.Content{SectID: "42"}))
	assert.Equal(t, "42,7", ChildPathOf(&models.Content{Path: "42", SectID: "7"}))
	assert.Equal(t, "1,2,3", ChildPathOf(&models.Content{Path: "1,2", SectID: "3"}))
}

func TestIsLeaf(t *testing.T) {
	for _, level := range []string{models.LevelLeaf, models.LevelTerminal} {
		assert.True(t, IsLeaf(level), level)
	}
	for _, level := range []string{models.LevelDivision, models.LevelSubdivision, models.LevelSection, models.LevelSubsection, models.LevelImage, ""} {
		assert.False(t, IsLeaf(level), level)
	}
}

func TestIsTopLevel(t *testing.T) {
	assert.True(t, IsTopLevel(models.LevelDivision))
	assert.False(t, IsTopLevel(models.LevelSubdivision))
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{}, SplitPath(""))
	assert.Equal(t, []string{"3"}, SplitPath("3"))
	assert.Equal(t, []string{"3", "1", "12"}, SplitPath("3, 1,,12"))
}

func TestAncestorPaths(t *testing.T) {
	assert.Empty(t, AncestorPaths(""))
	assert.Equal(t, []Ancestor{
		{Path: "", SectID: "a"},
		{Path: "a", SectID: "b"},
		{Path: "a,b", SectID: "c"},
	}, AncestorPaths("a,b,c"))
}

func TestAncestorPathsRebuildChildPath(t *testing.T) {
	// Every ancestor's child path is a prefix of the original path.
	path := "4,2,9"
	for i, a := range AncestorPaths(path) {
		child := ChildPathOf(&models.Content{Path: a.Path, SectID: a.SectID})
		assert.Equal(t, SplitPath(path)[:i+1], SplitPath(child))
	}
}
