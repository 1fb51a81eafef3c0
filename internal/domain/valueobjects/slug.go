package valueobjects

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	domainerrors "github.com/rafabene/avantpro-blog/internal/domain/errors"
)

// Slug é o identificador legível de um post usado em URLs
type Slug struct {
	value string
}

// NewSlug normaliza raw com DeriveSlug e rejeita resultados vazios
func NewSlug(raw string) (Slug, error) {
	slug := DeriveSlug(raw)
	if slug == "" {
		return Slug{}, domainerrors.Validation(domainerrors.ErrInvalidSlug, "slug")
	}
	return Slug{value: slug}, nil
}

// String retorna o valor do slug
func (s Slug) String() string {
	return s.value
}

// DeriveSlug gera um slug determinístico a partir de um título:
// remove acentos, converte para minúsculas, colapsa cada sequência de
// caracteres não alfanuméricos em um único hífen e remove hífens das pontas.
//
//	DeriveSlug("My Awesome Post Title") == "my-awesome-post-title"
func DeriveSlug(title string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		title,
	)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	b.Grow(len(folded))

	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}
