package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterFieldNames faz o validator do gin reportar os campos pelos nomes
// de json/form em vez dos nomes Go
func RegisterFieldNames() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(fieldName)
		}
	})
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// BindingErrors traduz o erro de ShouldBind em erros por campo.
// Erros que não são de validação (JSON malformado, tipo errado) caem em "request".
func BindingErrors(c *gin.Context, err error) FieldErrors {
	out := FieldErrors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add("request", T(c, "validation.malformed"))
		return out
	}

	for _, fe := range verrs {
		msg := FieldMessage(c, "validation."+fe.Tag(), fe.Field(), strings.ToLower(fe.Param()))
		out.Add(fe.Field(), msg)
	}
	return out
}
