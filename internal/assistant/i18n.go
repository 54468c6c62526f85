package assistant

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-assistant/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// NewBundle loads every embedded active.<lang>.json catalog.
// It returns the bundle and the language codes found.
func NewBundle() (*i18n.Bundle, []string) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return bundle, nil
	}

	var detectedLangs []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	return bundle, detectedLangs
}

// translator renders catalog messages in one language.
type translator struct {
	localizer *i18n.Localizer
}

func newTranslator(bundle *i18n.Bundle, lang string) translator {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	if _, err := language.Parse(lang); err != nil {
		slog.Warn(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
			config.LogKeyError, err,
		)
		lang = config.DefaultLanguage
	}
	return translator{localizer: i18n.NewLocalizer(bundle, lang)}
}

// msg translates key, falling back to the key itself when it is missing.
func (t translator) msg(key string, data ...map[string]any) string {
	if t.localizer == nil {
		return key
	}

	lc := &i18n.LocalizeConfig{MessageID: key}
	if len(data) > 0 {
		lc.TemplateData = data[0]
	}

	out, err := t.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return out
}

// joinLabels renders ["a", "b", "c"] as "a, b and c".
func (t translator) joinLabels(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	}
	last := len(labels) - 1
	return strings.Join(labels[:last], config.ArgsSeparator) + " " + t.msg(config.TKeyArgsAnd) + " " + labels[last]
}
