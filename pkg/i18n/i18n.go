package i18n

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed translations/*.toml
var translationFS embed.FS

// Locale identifies one of the two supported site languages.
type Locale string

const (
	LocalePL Locale = "pl"
	LocaleEN Locale = "en"

	// DefaultLocale is used whenever a request carries no language
	// or an unsupported one.
	DefaultLocale = LocalePL
)

// ParseLocale maps a free-form language value from a request body to a
// supported Locale. Anything that is not exactly "en" falls back to the
// default.
func ParseLocale(s string) Locale {
	if s == string(LocaleEN) {
		return LocaleEN
	}
	return DefaultLocale
}

var bundle *goi18n.Bundle

// Init loads the embedded translation files. Must be called once at
// process start before any call to T or TData.
func Init() error {
	b := goi18n.NewBundle(language.Polish)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files := []string{
		"translations/active.pl.toml",
		"translations/active.en.toml",
	}
	for _, file := range files {
		if _, err := b.LoadMessageFileFS(translationFS, file); err != nil {
			return fmt.Errorf("loading %s: %w", file, err)
		}
	}

	bundle = b
	return nil
}

// T translates a message by ID for the given locale.
func T(locale Locale, messageID string) string {
	return TData(locale, messageID, nil)
}

// TData translates a message with template data.
func TData(locale Locale, messageID string, data map[string]any) string {
	if bundle == nil {
		return messageID
	}
	localizer := goi18n.NewLocalizer(bundle, string(locale), string(DefaultLocale))
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}
