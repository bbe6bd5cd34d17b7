// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/cartlink/internal/i18n"
)

// I18nMiddleware picks the response language from the ?lang query parameter
// or the first Accept-Language entry, falling back to defaultLang.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	if defaultLang == "" {
		defaultLang = "en"
	}

	return func(c *gin.Context) {
		lang := normalizeLang(c.Query("lang"))
		if lang == "" {
			header := c.GetHeader("Accept-Language")
			// Handle cases like "zh-TW,zh;q=0.9,en;q=0.8"
			first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
			lang = normalizeLang(first)
		}
		if lang == "" {
			lang = defaultLang
		}

		c.Set("lang", lang)
		c.Next()
	}
}

func normalizeLang(code string) string {
	switch code {
	case "":
		return ""
	case "zh-TW", "zh-Hant", "zh_TW", "zh":
		return "zh_TW"
	case "en", "en-US", "en-GB":
		return "en"
	}
	if i18n.IsSupported(code) {
		return code
	}
	return ""
}
