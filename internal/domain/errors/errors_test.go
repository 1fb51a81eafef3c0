package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"validação", Validation(ErrSlugAlreadyExists, "slug"), KindValidation},
		{"autenticação", Authentication(ErrInvalidCredentials), KindAuthentication},
		{"não encontrado", NotFound(ErrPostNotFound), KindNotFound},
		{"storage", Storage(errors.New("disk full")), KindStorage},
		{"embrulhado", fmt.Errorf("ctx: %w", NotFound(ErrUserNotFound)), KindNotFound},
		{"erro comum", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.expected {
				t.Errorf("esperava %v, obteve %v", tt.expected, got)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	cause := errors.New("bucket unavailable")
	err := Storage(cause)

	if !errors.Is(err, ErrImageStoreFailed) {
		t.Error("esperava que o código fosse alcançável via errors.Is")
	}
	if !errors.Is(err, cause) {
		t.Error("esperava que a causa fosse alcançável via errors.Is")
	}
	if err.Error() != "error.image_store_failed: bucket unavailable" {
		t.Errorf("mensagem inesperada: %s", err.Error())
	}
}
