package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-api/internal/domains/book/model"
	"library-api/internal/domains/book/service"
	"library-api/internal/shared/response"
	"library-api/pkg/export"
	"library-api/pkg/pagination"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

// ListBooks GET /books?search=&page=&per_page=
func (h *BookHandler) ListBooks(c *gin.Context) {
	page, perPage, err := pagination.ParseParams(c.Query("page"), c.Query("per_page"))
	if err != nil {
		model.HandleBookError(c, err)
		return
	}

	result, err := h.service.ListBooks(c.Request.Context(), model.ListBooksRequest{
		Search:  c.Query("search"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		model.HandleBookError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// GetBook GET /books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		model.HandleBookError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, book)
}

// CreateBook POST /books
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleBookError(c, model.ErrInvalidPayload)
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		model.HandleBookError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, book)
}

// UpdateBook PUT /books/:id
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleBookError(c, model.ErrInvalidPayload)
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), id, req)
	if err != nil {
		model.HandleBookError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, book)
}

// DeleteBook DELETE /books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		model.HandleBookError(c, err)
		return
	}

	response.NoContent(c)
}

// ExportBooks GET /books/export?search=
func (h *BookHandler) ExportBooks(c *gin.Context) {
	f, err := h.service.ExportBooks(c.Request.Context(), c.Query("search"))
	if err != nil {
		model.HandleBookError(c, err)
		return
	}

	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", `attachment; filename="books.xlsx"`)
	c.Status(http.StatusOK)
	if err := export.Write(c.Writer, f); err != nil {
		log.Error().Err(err).Msg("[BookHandler] write export failed")
	}
}

// parseID reads the :id path parameter. Anything that is not an integer names no book.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		model.HandleBookError(c, model.ErrBookNotFound)
		return 0, false
	}
	return id, true
}
