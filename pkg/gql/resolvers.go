package gql

import (
	"fmt"
	"sort"

	"github.com/graphql-go/graphql"
	"github.com/iancoleman/strcase"
	"github.com/kmclassics/kmclassics/pkg/books"
	"github.com/kmclassics/kmclassics/pkg/config"
	"github.com/kmclassics/kmclassics/pkg/errcodes"
	"github.com/kmclassics/kmclassics/pkg/models"
	"github.com/pkg/errors"
)

const maxPageSize = 100

type resolver struct {
	bookService *books.Service
	cfg         *config.Config
}

func stringFieldPtrs(b *models.Book) map[string]**string {
	return map[string]**string{
		"source":            &b.Source,
		"titleChinese":      &b.TitleChinese,
		"author":            &b.Author,
		"publishYear":       &b.PublishYear,
		"translator":        &b.Translator,
		"edition":           &b.Edition,
		"language":          &b.Language,
		"physicalInfo":      &b.PhysicalInfo,
		"publisher":         &b.Publisher,
		"location":          &b.Location,
		"confidenceLevel":   &b.ConfidenceLevel,
		"abstract":          &b.Abstract,
		"references":        &b.References,
		"volume":            &b.Volume,
		"translatorInfo":    &b.TranslatorInfo,
		"bibliographicInfo": &b.BibliographicInfo,
		"authorInfo":        &b.AuthorInfo,
		"publicationInfo":   &b.PublicationInfo,
		"classification":    &b.Classification,
		"subject":           &b.Subject,
		"keywords":          &b.Keywords,
		"ebooks":            &b.Ebooks,
		"category":          &b.Category,
		"similars":          &b.Similars,
	}
}

// applyInput copies the fields present in input onto b and returns the
// columns that were written.
func applyInput(b *models.Book, input map[string]interface{}) ([]string, error) {
	ptrs := stringFieldPtrs(b)
	columns := []string{}
	for name, v := range input {
		switch name {
		case "bookId":
			continue
		case "title":
			s, ok := v.(string)
			if !ok || s == "" {
				return nil, errcodes.ValidationError(`"title" can't be empty`)
			}
			b.Title = s
		case "volumes", "chars":
			var n *int
			if i, ok := v.(int); ok {
				n = &i
			}
			if name == "volumes" {
				b.Volumes = n
			} else {
				b.Chars = n
			}
		default:
			ptr, ok := ptrs[name]
			if !ok {
				return nil, errcodes.UnknownParameter(name)
			}
			if s, ok := v.(string); ok {
				*ptr = &s
			} else {
				*ptr = nil
			}
		}
		columns = append(columns, strcase.ToSnake(name))
	}
	sort.Strings(columns)
	return columns, nil
}

func optionalString(m map[string]interface{}, key string) *string {
	if s, ok := m[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

func resolveKeywordList(p graphql.ResolveParams) (interface{}, error) {
	b, ok := p.Source.(*models.Book)
	if !ok {
		return []string{}, nil
	}
	return b.KeywordList(), nil
}

func resolveSimilarBookIDs(p graphql.ResolveParams) (interface{}, error) {
	b, ok := p.Source.(*models.Book)
	if !ok {
		return []string{}, nil
	}
	return b.SimilarBookIDs(), nil
}

func (r *resolver) books(p graphql.ResolveParams) (interface{}, error) {
	page, _ := p.Args["page"].(int)
	pageSize, ok := p.Args["pageSize"].(int)
	if !ok {
		pageSize = r.cfg.BooksPerPage
	}
	if page < 1 {
		return nil, errcodes.ValidationError(`"page" must be greater than or equal to 1`)
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, errcodes.ValidationError(fmt.Sprintf(`"pageSize" must be between 1 and %d`, maxPageSize))
	}

	offset := (page - 1) * pageSize
	opts := books.ListBooksOptions{
		Limit:  &pageSize,
		Offset: &offset,
	}
	if filter, ok := p.Args["filter"].(map[string]interface{}); ok {
		opts.Filter = books.BookFilter{
			BookID:   optionalString(filter, "bookId"),
			Title:    optionalString(filter, "title"),
			Author:   optionalString(filter, "author"),
			Category: optionalString(filter, "category"),
			Language: optionalString(filter, "language"),
		}
		if n, ok := filter["bookNum"].(int); ok {
			opts.Filter.BookNum = &n
		}
	}

	list, total, err := r.bookService.ListBooksWithTotal(p.Context, opts)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return map[string]interface{}{
		"data":        list,
		"total":       total,
		"totalPages":  (total + pageSize - 1) / pageSize,
		"currentPage": page,
	}, nil
}

func (r *resolver) book(p graphql.ResolveParams) (interface{}, error) {
	bookID, _ := p.Args["bookId"].(string)
	if !models.ValidBookID(bookID) {
		return nil, nil
	}
	book, err := r.bookService.RetrieveBook(p.Context, books.RetrieveBookOptions{BookID: &bookID})
	if err != nil {
		if errors.Is(err, errcodes.NotFound("Book")) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}
	return book, nil
}

func (r *resolver) searchBooks(p graphql.ResolveParams) (interface{}, error) {
	query, _ := p.Args["query"].(string)
	list, err := r.bookService.SearchBooks(p.Context, query)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return list, nil
}

func (r *resolver) addBook(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["input"].(map[string]interface{})

	book := &models.Book{}
	if id := optionalString(input, "bookId"); id != nil {
		if !models.ValidBookID(*id) {
			return nil, errcodes.ValidationError(fmt.Sprintf("%q is not a valid book id", *id))
		}
		book.BookID = *id
	}
	if _, err := applyInput(book, input); err != nil {
		return nil, err
	}

	if err := r.bookService.CreateBook(p.Context, book, r.cfg.BookIDPrefix); err != nil {
		return nil, err
	}
	return book, nil
}

func (r *resolver) updateBook(p graphql.ResolveParams) (interface{}, error) {
	bookID, _ := p.Args["bookId"].(string)
	input, _ := p.Args["input"].(map[string]interface{})
	if !models.ValidBookID(bookID) {
		return nil, errcodes.NotFound("Book")
	}

	book, err := r.bookService.RetrieveBook(p.Context, books.RetrieveBookOptions{BookID: &bookID})
	if err != nil {
		return nil, err
	}

	columns, err := applyInput(book, input)
	if err != nil {
		return nil, err
	}

	err = r.bookService.UpdateBook(p.Context, book, books.UpdateBookOptions{Columns: columns})
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (r *resolver) deleteBook(p graphql.ResolveParams) (interface{}, error) {
	bookID, _ := p.Args["bookId"].(string)
	if !models.ValidBookID(bookID) {
		return nil, errcodes.NotFound("Book")
	}
	if err := r.bookService.DeleteBook(p.Context, bookID); err != nil {
		return nil, err
	}
	return true, nil
}
