package dto

import (
	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"
)

// Response é o envelope de todas as respostas da API
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    any         `json:"data,omitempty"`
	Token   string      `json:"token,omitempty"`
	Meta    *Pagination `json:"meta,omitempty"`
	Errors  FieldErrors `json:"errors,omitempty"`
}

// FieldErrors mapeia o nome do campo para suas mensagens de validação
type FieldErrors map[string][]string

// Add acrescenta uma mensagem ao campo
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Pagination são os metadados de uma listagem paginada
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// Success cria um envelope de sucesso com a mensagem traduzida
func Success(c *gin.Context, messageKey string, data any) Response {
	return Response{
		Success: true,
		Message: T(c, messageKey),
		Data:    data,
	}
}

// Failure cria um envelope de erro com a mensagem traduzida
func Failure(c *gin.Context, messageKey string, params ...map[string]interface{}) Response {
	return Response{
		Success: false,
		Message: T(c, messageKey, params...),
	}
}

// ValidationFailure cria o envelope 422 com os erros por campo
func ValidationFailure(c *gin.Context, errs FieldErrors) Response {
	response := Failure(c, "error.validation")
	response.Errors = errs
	return response
}

// NewProblemI18n cria uma resposta RFC 7807 usando i18n
func NewProblemI18n(c *gin.Context, problemType, titleKey, detailKey string, status int) *problems.Problem {
	// Pegar base URL da configuração
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	problem := problems.NewDetailedProblem(status, T(c, detailKey))
	problem.Type = baseURL + problemType
	problem.Title = T(c, titleKey)
	problem.Instance = c.Request.URL.Path
	return problem
}
