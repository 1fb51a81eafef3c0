package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/rafabene/avantpro-blog/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"
)

// Translate traduz key no idioma da requisição; sem serviço no contexto devolve a própria key
func Translate(c *gin.Context, key string, params ...map[string]interface{}) string {
	value, _ := c.Get(I18nServiceContextKey)
	service, ok := value.(*i18n.Service)
	if !ok {
		return key
	}
	return service.T(Language(c), key, params...)
}

// Language devolve o idioma escolhido por DetectLanguage, ou o padrão do serviço
func Language(c *gin.Context) string {
	if lang := c.GetString(LanguageContextKey); lang != "" {
		return lang
	}
	if service, ok := c.Value(I18nServiceContextKey).(*i18n.Service); ok {
		return service.GetDefaultLanguage()
	}
	return "en"
}

// I18nMiddleware gerencia a detecção de idioma nas requisições
type I18nMiddleware struct {
	i18nService *i18n.Service
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{
		i18nService: i18nService,
	}
}

// DetectLanguage detecta e configura o idioma da requisição
// Prioridade:
// 1. Query parameter ?lang=pt-BR (override explícito)
// 2. Accept-Language header, respeitando os pesos q
// 3. Idioma padrão (fallback)
//
// O idioma escolhido também é devolvido em Content-Language.
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.resolve(c.Query("lang"))

		if lang == "" {
			lang = m.parseAcceptLanguage(c.GetHeader("Accept-Language"))
		}

		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)
		c.Header("Content-Language", lang)

		c.Next()
	}
}

// parseAcceptLanguage retorna o idioma suportado de maior peso
// Exemplo: "en;q=0.5,pt-BR" -> "pt-BR"
func (m *I18nMiddleware) parseAcceptLanguage(acceptLang string) string {
	if acceptLang == "" {
		return ""
	}

	// Tags já vêm ordenadas por peso, mantendo a ordem do header nos empates
	tags, weights, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil {
		return ""
	}

	for i, tag := range tags {
		if weights[i] <= 0 {
			continue
		}
		if lang := m.resolve(tag.String()); lang != "" {
			return lang
		}
	}
	return ""
}

// resolve casa tag com um idioma suportado: exato (sem diferenciar caixa),
// depois a base (pt-PT -> pt), depois uma variante regional (pt -> pt-BR)
func (m *I18nMiddleware) resolve(tag string) string {
	if tag == "" {
		return ""
	}

	supported := m.i18nService.GetSupportedLanguages()
	for _, lang := range supported {
		if strings.EqualFold(lang, tag) {
			return lang
		}
	}

	base, _, _ := strings.Cut(tag, "-")
	for _, lang := range supported {
		if strings.EqualFold(lang, base) {
			return lang
		}
	}
	for _, lang := range supported {
		if langBase, _, _ := strings.Cut(lang, "-"); strings.EqualFold(langBase, base) {
			return lang
		}
	}
	return ""
}
