package intl

import (
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"path"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFiles embed.FS

// DefaultLanguage is used when a request names no supported language.
const DefaultLanguage = "id"

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
}

var (
	allSupportedLanguages = []SupportedLanguage{
		{
			Code:        "id",
			VerboseName: "Bahasa Indonesia",
			Tag:         language.Indonesian,
		},
		{
			Code:        "en",
			VerboseName: "English",
			Tag:         language.English,
		},
	}

	SupportedLanguages = allSupportedLanguages
)

// GetSupportedLanguages filters the supported languages by code. An empty
// whitelist returns all of them.
func GetSupportedLanguages(whitelist []string) []SupportedLanguage {
	if len(whitelist) == 0 {
		return allSupportedLanguages
	}
	allowed := make(map[string]bool, len(whitelist))
	for _, code := range whitelist {
		allowed[code] = true
	}
	filtered := make([]SupportedLanguage, 0, len(whitelist))
	for _, lang := range allSupportedLanguages {
		if allowed[lang.Code] {
			filtered = append(filtered, lang)
		}
	}
	return filtered
}

// NewBundle loads the embedded message catalogs. Indonesian is the fallback
// for messages missing from another catalog.
func NewBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.Indonesian)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(localeFiles, "locales/*.toml")
	if err != nil {
		panic(err)
	}
	for _, file := range files {
		data, err := localeFiles.ReadFile(file)
		if err != nil {
			panic(err)
		}
		bundle.MustParseMessageFileBytes(data, path.Base(file))
	}
	return bundle
}

var defaultLocalizer = sync.OnceValue(func() *i18n.Localizer {
	return i18n.NewLocalizer(NewBundle(), DefaultLanguage)
})

// Default renders messages in DefaultLanguage.
func Default() *i18n.Localizer {
	return defaultLocalizer()
}

// T renders the message id through l, or through Default when l is nil.
// An unknown id renders as itself.
func T(l *i18n.Localizer, id string, data map[string]any) string {
	if l == nil {
		l = Default()
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil && msg == "" {
		return id
	}
	return msg
}

// Localizable is implemented by errors that carry a catalog message.
type Localizable interface {
	Localize(l *i18n.Localizer) string
}

// LocalizeError renders the first Localizable in err's chain, or err.Error().
func LocalizeError(l *i18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	var le Localizable
	if errors.As(err, &le) {
		return le.Localize(l)
	}
	return err.Error()
}
