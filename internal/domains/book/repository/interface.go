package repository

import (
	"context"

	"library-api/internal/domains/book/model"
)

// RepositoryInterface is the persistence contract of the book domain.
type RepositoryInterface interface {
	// ListBooks returns every book matching filter in ascending id order.
	ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	GetBookByID(ctx context.Context, id int64) (*model.Book, error)
	// CreateBook inserts book and sets its ID.
	CreateBook(ctx context.Context, book *model.Book) error
	UpdateBook(ctx context.Context, book *model.Book) error
	DeleteBook(ctx context.Context, id int64) error
}
