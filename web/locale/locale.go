// Package locale translates page text and flashed messages. Indonesian is
// the default; a "lang" cookie or Accept-Language header can pick another.
package locale

import (
	"io/fs"
	"strings"

	"github.com/dukcapil-minsel/suket/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const localizerKey = "localizer"

var i18nBundle *i18n.Bundle

// InitLocalizer parses every translation file under the "translation"
// directory of fsys.
func InitLocalizer(fsys fs.FS) error {
	bundle := i18n.NewBundle(language.Indonesian)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	err := fs.WalkDir(fsys, "translation", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		_, err = bundle.ParseMessageFileBytes(data, path)
		return err
	})
	if err != nil {
		return err
	}
	i18nBundle = bundle
	return nil
}

func createTemplateData(params []string) map[string]any {
	templateData := make(map[string]any, len(params))
	for _, param := range params {
		parts := strings.SplitN(param, "==", 2)
		if len(parts) == 2 {
			templateData[parts[0]] = parts[1]
		}
	}
	return templateData
}

// T localizes key with params of the form "name==value". It falls back to
// the key itself when the localizer or the message is missing.
func T(localizer *i18n.Localizer, key string, params ...string) string {
	if localizer == nil {
		return key
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Warningf("Failed to localize message %q: %v", key, err)
		return key
	}
	return msg
}

// LocalizerMiddleware attaches a request-scoped localizer to the context.
func LocalizerMiddleware(defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if i18nBundle == nil {
			c.Next()
			return
		}
		langs := make([]string, 0, 3)
		if cookie, err := c.Request.Cookie("lang"); err == nil && cookie.Value != "" {
			langs = append(langs, cookie.Value)
		}
		if accept := c.GetHeader("Accept-Language"); accept != "" {
			langs = append(langs, accept)
		}
		langs = append(langs, defaultLang)

		c.Set(localizerKey, i18n.NewLocalizer(i18nBundle, langs...))
		c.Next()
	}
}

// Localizer returns the localizer attached by LocalizerMiddleware, or nil.
func Localizer(c *gin.Context) *i18n.Localizer {
	if v, ok := c.Get(localizerKey); ok {
		if l, ok := v.(*i18n.Localizer); ok {
			return l
		}
	}
	return nil
}

// Localize translates key for the current request.
func Localize(c *gin.Context, key string, params ...string) string {
	return T(Localizer(c), key, params...)
}
