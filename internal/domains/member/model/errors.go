package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"library-api/internal/shared/response"
	"library-api/pkg/pagination"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidPayload = errors.New("invalid request payload")
)

var memberErrorMap = map[error]struct {
	Status  int
	Message string
}{
	ErrMemberNotFound:               {Status: http.StatusNotFound, Message: "Member not found"},
	ErrInvalidPayload:               {Status: http.StatusBadRequest, Message: "Invalid request payload"},
	pagination.ErrInvalidPageParams: {Status: http.StatusBadRequest, Message: "page and per_page must be positive integers"},
}

// HandleMemberError writes the HTTP response for err and reports whether it did.
func HandleMemberError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ValidationFailed(c, verrs)
		return true
	}

	for target, mapped := range memberErrorMap {
		if errors.Is(err, target) {
			response.Error(c, mapped.Status, mapped.Message)
			return true
		}
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("[MemberHandler] unexpected error")
	response.InternalServerError(c)
	return true
}
