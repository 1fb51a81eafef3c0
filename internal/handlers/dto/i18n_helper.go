package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-blog/internal/handlers/middleware"
)

// Params são os valores interpolados nas mensagens traduzidas
type Params = map[string]interface{}

// T traduz a chave no idioma da requisição
// Uso: dto.T(c, "auth.registered")
func T(c *gin.Context, key string, params ...Params) string {
	return middleware.Translate(c, key, params...)
}

// FieldMessage traduz uma mensagem de validação de campo.
// Chaves sem tradução caem em validation.invalid.
func FieldMessage(c *gin.Context, key, field string, param any) string {
	params := Params{"Field": field, "Param": param}

	msg := T(c, key, params)
	if msg == key {
		msg = T(c, "validation.invalid", params)
	}
	return msg
}
