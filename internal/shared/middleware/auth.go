package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-api/internal/shared/response"
	"library-api/pkg/jwt"
)

// IdentityKey is the gin context key holding the verified token subject.
const IdentityKey = "identity"

// AuthMiddleware rejects the request with 401 unless it carries a valid bearer token.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := jwt.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		claims, err := manager.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(IdentityKey, claims.Identity())
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	if errors.Is(err, jwt.ErrTokenMissing) {
		response.Abort(c, http.StatusUnauthorized, "Token is missing!")
		return
	}
	response.Abort(c, http.StatusUnauthorized, "Token is invalid!")
}
