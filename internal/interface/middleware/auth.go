package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
	"github.com/busca-app/cacapreco-api/pkg/helpers"
	"github.com/busca-app/cacapreco-api/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUserRoleKey = "userRole"
)

// Auth validates the `Authorization: Bearer <token>` header and injects the
// account id and role into the Gin context. A missing token is 401; a token
// that fails signature or expiry checks is 403. Validation is pure: no store
// lookup, no side effects.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortError(c, http.StatusUnauthorized, "Token não fornecido.", nil)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.AbortError(c, http.StatusUnauthorized, "Token não fornecido.", nil)
			return
		}
		claims, err := jwt.ParseToken(parts[1])
		if err != nil {
			response.AbortError(c, http.StatusForbidden, "Token inválido.", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserRoleKey, claims.Tipo)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose role is not in the
// allow-list. Must run after Auth.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(CtxUserRoleKey)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "Token não fornecido.", nil)
			return
		}
		r, ok := role.(entity.Role)
		if !ok || !r.Is(roles...) {
			response.AbortError(c, http.StatusForbidden, "Acesso negado.", nil)
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated account id set by Auth.
func UserID(c *gin.Context) int64 {
	v, _ := c.Get(CtxUserIDKey)
	id, _ := v.(int64)
	return id
}

// UserRole returns the authenticated role set by Auth.
func UserRole(c *gin.Context) entity.Role {
	v, _ := c.Get(CtxUserRoleKey)
	r, _ := v.(entity.Role)
	return r
}
