package model

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"library-api/internal/shared/response"
)

var (
	ErrMissingField       = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// LoginRequest is the body of POST /login. A field that is absent or null is missing.
type LoginRequest struct {
	Username *Credential `json:"username"`
	Password *Credential `json:"password"`
}

// Credential is one login field. Any non-null JSON value counts as supplied,
// but only a JSON string can ever match the configured value.
type Credential struct {
	Text     string
	IsString bool
}

func NewCredential(s string) *Credential {
	return &Credential{Text: s, IsString: true}
}

func (c *Credential) UnmarshalJSON(data []byte) error {
	c.IsString = json.Unmarshal(data, &c.Text) == nil
	if !c.IsString {
		c.Text = ""
	}
	return nil
}

func (r LoginRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.NotNil),
		validation.Field(&r.Password, validation.NotNil),
	)
	if err != nil {
		return ErrMissingField
	}
	return nil
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type WelcomeResponse struct {
	Message string `json:"message"`
}

// HandleAuthError writes the HTTP response for err and reports whether it did.
func HandleAuthError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrMissingField):
		response.BadRequest(c, "Username and password are required")
	case errors.Is(err, ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid credentials")
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("[AuthHandler] unexpected error")
		response.InternalServerError(c)
	}
	return true
}
