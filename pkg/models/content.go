package models

import (
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Structural role tags stored in Content.Level.
const (
	LevelDivision    = "A"
	LevelSubdivision = "B"
	LevelSection     = "O"
	LevelSubsection  = "S"
	LevelImage       = "P"
	LevelLeaf        = "X"
	LevelTerminal    = "Z"
)

var knownLevels = map[string]struct{}{
	LevelDivision:    {},
	LevelSubdivision: {},
	LevelSection:     {},
	LevelSubsection:  {},
	LevelImage:       {},
	LevelLeaf:        {},
	LevelTerminal:    {},
}

// KnownLevel reports whether level belongs to the structural tag alphabet.
func KnownLevel(level string) bool {
	_, ok := knownLevels[level]
	return ok
}

// Content is one node of a book's content tree: a heading, paragraph or image
// block. Path holds the comma separated SectIDs of the node's ancestors, from
// the volume root down to its parent.
type Content struct {
	bun.BaseModel `bun:"table:contents,alias:c"`

	BookID    string `bun:",pk" json:"bookId"`
	ContentID int    `bun:",pk" json:"contentId"`
	VolumeNum int    `bun:",notnull" json:"volumeNum"`
	SectID    string `bun:",notnull" json:"sectId"`
	Path      string `bun:",notnull" json:"path"`
	Level     string `bun:",notnull" json:"level"`
	Depth     string `bun:",notnull" json:"depth"`
	SectNum   string `bun:",notnull" json:"sectNum"`
	Chinese   string `bun:",notnull" json:"chinese"`
	Korean    string `bun:",notnull" json:"korean"`
	English   string `bun:",notnull" json:"english"`
	Image     string `bun:",notnull" json:"image"`
}

// Validate checks the fields every query relies on.
func (c *Content) Validate() error {
	if c.SectID == "" {
		return errors.Errorf("content %d has no sect id", c.ContentID)
	}
	if !KnownLevel(c.Level) {
		return errors.Errorf("content %d has unknown level %q", c.ContentID, c.Level)
	}
	if c.VolumeNum <= 0 {
		return errors.Errorf("content %d has invalid volume %d", c.ContentID, c.VolumeNum)
	}
	return nil
}
