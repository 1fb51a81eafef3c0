package errors

import "errors"

// Kind classifica erros de domínio; a camada HTTP é a única que traduz Kind em status
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindNotFound
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound       = errors.New("error.user_not_found")
	ErrEmailAlreadyExists = errors.New("error.email_already_exists")
	ErrInvalidCredentials = errors.New("error.invalid_credentials")
	ErrInvalidOAuthToken  = errors.New("error.invalid_oauth_token")
	ErrUnauthorized       = errors.New("error.unauthorized")
	ErrPostNotFound       = errors.New("error.post_not_found")
	ErrSlugAlreadyExists  = errors.New("error.slug_already_exists")
	ErrImageStoreFailed   = errors.New("error.image_store_failed")
)

// Domain errors
var (
	ErrInvalidEmail      = errors.New("error.invalid_email")
	ErrInvalidSlug       = errors.New("error.invalid_slug")
	ErrInvalidPagination = errors.New("error.invalid_pagination")
	ErrFieldRequired     = errors.New("validation.required")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeNotFound         = "/problems/not-found"
	ProblemTypeMethodNotAllowed = "/problems/method-not-allowed"
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Kind  Kind
	Code  error // message ID (uma das sentinelas acima)
	Field string
	Err   error
}

func (e *DomainError) Error() string {
	msg := e.Code.Error()
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap expõe tanto o código quanto a causa para errors.Is
func (e *DomainError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Code, e.Err}
	}
	return []error{e.Code}
}

// Validation cria um erro de validação (entrada malformada ou conflitante)
func Validation(code error, field string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: code, Field: field}
}

// Authentication cria um erro de autenticação
func Authentication(code error) *DomainError {
	return &DomainError{Kind: KindAuthentication, Code: code}
}

// NotFound cria um erro de recurso inexistente
func NotFound(code error) *DomainError {
	return &DomainError{Kind: KindNotFound, Code: code}
}

// Storage cria um erro de escrita no file store
func Storage(err error) *DomainError {
	return &DomainError{Kind: KindStorage, Code: ErrImageStoreFailed, Err: err}
}

// KindOf retorna o Kind de err, ou KindInternal quando não é um DomainError
func KindOf(err error) Kind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// As expõe errors.As sem obrigar o import duplo do pacote padrão
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is expõe errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}
