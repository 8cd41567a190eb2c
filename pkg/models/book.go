package models

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Book is one bibliographic record. Every optional attribute is nullable
// because the scraped source pages only fill in what they know.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	BookID            string    `bun:",pk" json:"bookId"`
	BookNum           int       `bun:",notnull" json:"bookNum"`
	Title             string    `bun:",notnull" json:"title"`
	Volumes           *int      `json:"volumes"`
	Chars             *int      `json:"chars"`
	Source            *string   `json:"source"`
	TitleChinese      *string   `json:"titleChinese"`
	Author            *string   `json:"author"`
	PublishYear       *string   `json:"publishYear"`
	Translator        *string   `json:"translator"`
	Edition           *string   `json:"edition"`
	Language          *string   `json:"language"`
	PhysicalInfo      *string   `json:"physicalInfo"`
	Publisher         *string   `json:"publisher"`
	Location          *string   `json:"location"`
	ConfidenceLevel   *string   `json:"confidenceLevel"`
	Abstract          *string   `json:"abstract"`
	References        *string   `json:"references"`
	Volume            *string   `json:"volume"`
	TranslatorInfo    *string   `json:"translatorInfo"`
	BibliographicInfo *string   `json:"bibliographicInfo"`
	AuthorInfo        *string   `json:"authorInfo"`
	PublicationInfo   *string   `json:"publicationInfo"`
	Classification    *string   `json:"classification"`
	Subject           *string   `json:"subject"`
	Keywords          *string   `json:"keywords"`
	Ebooks            *string   `json:"ebooks"`
	Category          *string   `json:"category"`
	Similars          *string   `json:"similars"`
	CreatedAt         time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt         time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// KeywordList splits the stored keyword string into its entries.
func (b *Book) KeywordList() []string {
	return splitList(b.Keywords)
}

// SimilarBookIDs returns the ids of books marked as similar to this one.
func (b *Book) SimilarBookIDs() []string {
	return splitList(b.Similars)
}

// EbookList returns the ebook references attached to this book.
func (b *Book) EbookList() []string {
	return splitList(b.Ebooks)
}

func splitList(s *string) []string {
	if s == nil {
		return []string{}
	}
	parts := strings.FieldsFunc(*s, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
