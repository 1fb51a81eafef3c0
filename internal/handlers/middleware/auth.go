package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-blog/internal/domain/errors"
	"github.com/rafabene/avantpro-blog/internal/domain/ports"
)

const (
	// UserIDContextKey guarda o id do usuário autenticado
	UserIDContextKey = "user_id"
	// TokenContextKey guarda o bearer token bruto da requisição
	TokenContextKey = "bearer_token"
)

// Authenticator valida bearer tokens
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (ports.Token, error)
}

// RequireAuth rejeita com 401 requisições sem bearer token válido,
// antes de qualquer handler executar
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))

		token, err := auth.Authenticate(c.Request.Context(), raw)
		if err != nil {
			if errors.KindOf(err) == errors.KindAuthentication {
				abort(c, http.StatusUnauthorized, "error.unauthorized")
				return
			}
			_ = c.Error(err)
			abort(c, http.StatusInternalServerError, "error.internal")
			return
		}

		c.Set(UserIDContextKey, token.UserID)
		c.Set(TokenContextKey, raw)
		c.Next()
	}
}

// UserID retorna o id do usuário autenticado
func UserID(c *gin.Context) string {
	return c.GetString(UserIDContextKey)
}

// RawToken retorna o bearer token validado por RequireAuth
func RawToken(c *gin.Context) string {
	return c.GetString(TokenContextKey)
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func abort(c *gin.Context, status int, key string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": Translate(c, key),
	})
}
