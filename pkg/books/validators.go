package books

import "github.com/kmclassics/kmclassics/pkg/models"

type ListBooksQuery struct {
	Limit    *int    `query:"limit" json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
	Offset   int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	Search   *string `query:"search" json:"search,omitempty" mod:"trim" validate:"omitempty,max=100"`
	Author   *string `query:"author" json:"author,omitempty" mod:"trim"`
	Category *string `query:"category" json:"category,omitempty" mod:"trim"`
	Language *string `query:"language" json:"language,omitempty" mod:"trim"`
}

type ListBooksResponse struct {
	Books []*models.Book `json:"books"`
	Total int            `json:"total"`
}
