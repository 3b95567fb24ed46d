package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"library-api/internal/domains/book/model"
	"library-api/internal/infrastructure/database"
)

const tableBooks = "books"

type bookRepository struct {
	store *database.Store
}

// NewSQLRepository returns a book repository backed by store. The same queries run on
// PostgreSQL and SQLite; only the dialect of store differs.
func NewSQLRepository(store *database.Store) RepositoryInterface {
	return &bookRepository{store: store}
}

func (r *bookRepository) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	ds := r.store.DB().
		From(tableBooks).
		Prepared(true).
		Order(goqu.I("id").Asc())

	if filter.Search != "" {
		ds = ds.Where(goqu.Or(
			r.store.Contains("title", filter.Search),
			r.store.Contains("author", filter.Search),
		))
	}

	books := make([]model.Book, 0)
	if err := ds.ScanStructsContext(ctx, &books); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) GetBookByID(ctx context.Context, id int64) (*model.Book, error) {
	var book model.Book
	found, err := r.store.DB().
		From(tableBooks).
		Prepared(true).
		Where(goqu.Ex{"id": id}).
		ScanStructContext(ctx, &book)
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	if !found {
		return nil, model.ErrBookNotFound
	}
	return &book, nil
}

func (r *bookRepository) CreateBook(ctx context.Context, book *model.Book) error {
	ds := r.store.DB().
		Insert(tableBooks).
		Prepared(true).
		Rows(goqu.Record{
			"title":          book.Title,
			"author":         book.Author,
			"published_date": database.Nullable(book.PublishedDate),
		})

	id, err := r.store.InsertReturningID(ctx, ds)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	book.ID = id
	return nil
}

func (r *bookRepository) UpdateBook(ctx context.Context, book *model.Book) error {
	res, err := r.store.DB().
		Update(tableBooks).
		Prepared(true).
		Set(goqu.Record{
			"title":          book.Title,
			"author":         book.Author,
			"published_date": database.Nullable(book.PublishedDate),
		}).
		Where(goqu.Ex{"id": book.ID}).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}

	n, err := database.RowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) DeleteBook(ctx context.Context, id int64) error {
	res, err := r.store.DB().
		Delete(tableBooks).
		Prepared(true).
		Where(goqu.Ex{"id": id}).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}

	n, err := database.RowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrBookNotFound
	}
	return nil
}
