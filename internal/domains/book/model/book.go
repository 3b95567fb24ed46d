package model

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-api/internal/shared/optional"
)

// Book is the persisted row of the books table.
type Book struct {
	ID            int64   `db:"id"`
	Title         string  `db:"title"`
	Author        string  `db:"author"`
	PublishedDate *string `db:"published_date"`
}

// BookResponse is the externally visible projection of a Book.
type BookResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	PublishedDate *string `json:"published_date"`
}

func (b Book) ToResponse() BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		PublishedDate: b.PublishedDate,
	}
}

// BookFilter narrows ListBooks. Empty Search matches every book.
type BookFilter struct {
	Search string
}

// BookRequest is the body of POST /books and PUT /books/:id.
// Title and Author are pointers so a missing key can be told apart from an empty string.
type BookRequest struct {
	Title         *string         `json:"title"`
	Author        *string         `json:"author"`
	PublishedDate optional.String `json:"published_date"`
}

func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NotNil.Error("'title' is a required property")),
		validation.Field(&r.Author, validation.NotNil.Error("'author' is a required property")),
	)
}

// ListBooksRequest carries the parsed query of GET /books.
type ListBooksRequest struct {
	Search  string
	Page    int
	PerPage int
}

// GenerateBookDetailCacheKey is the cache key of a single book.
func GenerateBookDetailCacheKey(id int64) string {
	return fmt.Sprintf("book:detail:%d", id)
}
