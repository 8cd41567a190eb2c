// Package gql serves book metadata over GraphQL.
package gql

import (
	"github.com/graphql-go/graphql"
	"github.com/kmclassics/kmclassics/pkg/books"
	"github.com/kmclassics/kmclassics/pkg/config"
	"github.com/pkg/errors"
)

// optionalStringFields are the nullable text attributes of a book, by their
// GraphQL name.
var optionalStringFields = []string{
	"source",
	"titleChinese",
	"author",
	"publishYear",
	"translator",
	"edition",
	"language",
	"physicalInfo",
	"publisher",
	"location",
	"confidenceLevel",
	"abstract",
	"references",
	"volume",
	"translatorInfo",
	"bibliographicInfo",
	"authorInfo",
	"publicationInfo",
	"classification",
	"subject",
	"keywords",
	"ebooks",
	"category",
	"similars",
}

func bookType() *graphql.Object {
	fields := graphql.Fields{
		"bookId":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"bookNum":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"title":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"volumes":   &graphql.Field{Type: graphql.Int},
		"chars":     &graphql.Field{Type: graphql.Int},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
		"updatedAt": &graphql.Field{Type: graphql.DateTime},
		"keywordList": &graphql.Field{
			Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
			Resolve: resolveKeywordList,
		},
		"similarBookIds": &graphql.Field{
			Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
			Resolve: resolveSimilarBookIDs,
		},
	}
	for _, name := range optionalStringFields {
		fields[name] = &graphql.Field{Type: graphql.String}
	}
	return graphql.NewObject(graphql.ObjectConfig{
		Name:   "Book",
		Fields: fields,
	})
}

func bookInputFields(requireTitle bool) graphql.InputObjectConfigFieldMap {
	titleType := graphql.Input(graphql.String)
	if requireTitle {
		titleType = graphql.NewNonNull(graphql.String)
	}
	fields := graphql.InputObjectConfigFieldMap{
		"title":   &graphql.InputObjectFieldConfig{Type: titleType},
		"volumes": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"chars":   &graphql.InputObjectFieldConfig{Type: graphql.Int},
	}
	for _, name := range optionalStringFields {
		fields[name] = &graphql.InputObjectFieldConfig{Type: graphql.String}
	}
	return fields
}

// NewSchema builds the schema. Mutations only touch book metadata.
func NewSchema(svc *books.Service, cfg *config.Config) (graphql.Schema, error) {
	r := &resolver{bookService: svc, cfg: cfg}
	book := bookType()

	bookInputFieldMap := bookInputFields(true)
	bookInputFieldMap["bookId"] = &graphql.InputObjectFieldConfig{Type: graphql.String}
	bookInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "BookInput",
		Fields: bookInputFieldMap,
	})
	bookUpdateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:   "BookUpdateInput",
		Fields: bookInputFields(false),
	})
	bookFilterInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "BookFilterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"bookId":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"bookNum":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"title":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"author":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"category": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"language": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
	bookPagination := graphql.NewObject(graphql.ObjectConfig{
		Name: "BookPagination",
		Fields: graphql.Fields{
			"data":        &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(book)))},
			"total":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"totalPages":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"currentPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"books": &graphql.Field{
				Type: bookPagination,
				Args: graphql.FieldConfigArgument{
					"page":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"pageSize": &graphql.ArgumentConfig{Type: graphql.Int},
					"filter":   &graphql.ArgumentConfig{Type: bookFilterInput},
				},
				Resolve: r.books,
			},
			"book": &graphql.Field{
				Type: book,
				Args: graphql.FieldConfigArgument{
					"bookId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.book,
			},
			"searchBooks": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(book))),
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.searchBooks,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addBook": &graphql.Field{
				Type: book,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(bookInput)},
				},
				Resolve: r.addBook,
			},
			"updateBook": &graphql.Field{
				Type: book,
				Args: graphql.FieldConfigArgument{
					"bookId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"input":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(bookUpdateInput)},
				},
				Resolve: r.updateBook,
			},
			"deleteBook": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"bookId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.deleteBook,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
	if err != nil {
		return graphql.Schema{}, errors.WithStack(err)
	}
	return schema, nil
}
