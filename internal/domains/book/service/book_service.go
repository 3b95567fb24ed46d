package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"library-api/internal/domains/book/model"
	"library-api/internal/domains/book/repository"
	"library-api/pkg/cache"
	"library-api/pkg/export"
	"library-api/pkg/pagination"
)

type BookService struct {
	repo     repository.RepositoryInterface
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewBookService(repo repository.RepositoryInterface, cache cache.Cache, cacheTTL time.Duration) ServiceInterface {
	return &BookService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// ListBooks filters, then paginates the ordered result in memory.
func (s *BookService) ListBooks(ctx context.Context, req model.ListBooksRequest) (*pagination.Page[model.BookResponse], error) {
	if req.Page < 1 || req.PerPage < 1 {
		return nil, pagination.ErrInvalidPageParams
	}

	books, err := s.repo.ListBooks(ctx, model.BookFilter{Search: req.Search})
	if err != nil {
		return nil, err
	}

	page := pagination.Paginate(books, req.Page, req.PerPage, model.Book.ToResponse)
	return &page, nil
}

func (s *BookService) GetBook(ctx context.Context, id int64) (*model.BookResponse, error) {
	cacheKey := model.GenerateBookDetailCacheKey(id)

	var cached model.BookResponse
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[BookService] cache get failed")
	}
	if found {
		return &cached, nil
	}

	// The lease is taken before the read so an update or delete landing in between discards the fill.
	token, err := s.cache.Lease(ctx, cacheKey, cache.LeaseTTL)
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[BookService] cache lease failed")
	}

	book, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := book.ToResponse()
	if token == "" {
		return &resp, nil
	}
	if err := s.cache.Fill(ctx, cacheKey, token, resp, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[BookService] cache fill failed")
	}
	return &resp, nil
}

func (s *BookService) CreateBook(ctx context.Context, req model.BookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book := &model.Book{
		Title:         *req.Title,
		Author:        *req.Author,
		PublishedDate: req.PublishedDate.Or(nil),
	}
	if err := s.repo.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	log.Info().Int64("book_id", book.ID).Msg("[BookService] book created")
	resp := book.ToResponse()
	return &resp, nil
}

// UpdateBook replaces title and author. published_date is kept when the key is omitted
// and cleared when it is null.
func (s *BookService) UpdateBook(ctx context.Context, id int64, req model.BookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = *req.Title
	existing.Author = *req.Author
	existing.PublishedDate = req.PublishedDate.Or(existing.PublishedDate)

	if err := s.repo.UpdateBook(ctx, existing); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	resp := existing.ToResponse()
	return &resp, nil
}

func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)

	log.Info().Int64("book_id", id).Msg("[BookService] book deleted")
	return nil
}

// ExportBooks renders every book matching search as a workbook.
func (s *BookService) ExportBooks(ctx context.Context, search string) (*excelize.File, error) {
	books, err := s.repo.ListBooks(ctx, model.BookFilter{Search: search})
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(books))
	for _, b := range books {
		rows = append(rows, []interface{}{b.ID, b.Title, b.Author, export.StringOrNil(b.PublishedDate)})
	}
	return export.Workbook("Books", []string{"ID", "Title", "Author", "Published Date"}, rows)
}

func (s *BookService) invalidate(ctx context.Context, id int64) {
	cacheKey := model.GenerateBookDetailCacheKey(id)
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("[BookService] cache invalidation failed")
	}
}
