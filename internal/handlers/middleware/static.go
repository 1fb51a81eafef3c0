package middleware

import (
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// StoredFiles protege arquivos enviados por usuários servidos em /storage:
// o navegador não adivinha o tipo, não executa scripts e SVG é baixado como anexo
func StoredFiles() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; sandbox")

		if strings.EqualFold(path.Ext(c.Request.URL.Path), ".svg") {
			c.Header("Content-Disposition", "attachment")
		}

		c.Next()
	}
}
