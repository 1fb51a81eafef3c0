package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-blog/internal/domain/errors"
	"github.com/rafabene/avantpro-blog/internal/domain/ports"
	"github.com/rafabene/avantpro-blog/internal/handlers/dto"
)

// respondError traduz erros de domínio em status + envelope.
// É o único ponto onde Kind vira código HTTP.
func respondError(c *gin.Context, logger ports.Logger, err error) {
	var de *errors.DomainError
	if !errors.As(err, &de) {
		logger.Error("unexpected error", "path", c.Request.URL.Path, "error", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.Failure(c, "error.internal"))
		return
	}

	code := de.Code.Error()

	switch de.Kind {
	case errors.KindValidation:
		field := de.Field
		if field == "" {
			field = "request"
		}
		errs := dto.FieldErrors{}
		errs.Add(field, dto.FieldMessage(c, code, field, ""))
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationFailure(c, errs))
	case errors.KindAuthentication:
		c.JSON(http.StatusUnauthorized, dto.Failure(c, code))
	case errors.KindNotFound:
		c.JSON(http.StatusNotFound, dto.Failure(c, code))
	case errors.KindStorage:
		logger.Error("storage failure", "path", c.Request.URL.Path, "error", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.Failure(c, code))
	default:
		logger.Error("internal error", "path", c.Request.URL.Path, "error", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.Failure(c, "error.internal"))
	}
}

// respondBindingError responde 422 para falhas de binding/validação da requisição
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, dto.ValidationFailure(c, dto.BindingErrors(c, err)))
}

// respondProblem responde RFC 7807 (application/problem+json)
func respondProblem(c *gin.Context, status int, problemType, titleKey, detailKey string) {
	problem := dto.NewProblemI18n(c, problemType, titleKey, detailKey, status)
	c.Header("Content-Type", "application/problem+json")
	c.JSON(status, problem)
}
