package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"library-api/internal/domains/book/model"
	"library-api/pkg/pagination"
)

// ServiceInterface is the business contract of the book domain.
type ServiceInterface interface {
	ListBooks(ctx context.Context, req model.ListBooksRequest) (*pagination.Page[model.BookResponse], error)
	GetBook(ctx context.Context, id int64) (*model.BookResponse, error)
	CreateBook(ctx context.Context, req model.BookRequest) (*model.BookResponse, error)
	UpdateBook(ctx context.Context, id int64, req model.BookRequest) (*model.BookResponse, error)
	DeleteBook(ctx context.Context, id int64) error
	ExportBooks(ctx context.Context, search string) (*excelize.File, error)
}
