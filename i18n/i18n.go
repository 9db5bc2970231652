// Package i18n localizes the user-facing strings of the widgets and the demo
// application. Translations are embedded YAML files parsed with go-i18n.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	lang      string
)

// Init loads the embedded translations and activates lang. Unknown languages
// fall back to English.
func Init(tag string) error {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return fmt.Errorf("read locales: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			return fmt.Errorf("read locale %s: %w", f.Name(), err)
		}
		if _, err := b.ParseMessageFileBytes(data, f.Name()); err != nil {
			return fmt.Errorf("parse locale %s: %w", f.Name(), err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	bundle = b
	localizer = i18n.NewLocalizer(b, tag)
	lang = tag
	return nil
}

// SetLang switches the active language.
func SetLang(tag string) error {
	return Init(tag)
}

// Lang returns the active language tag.
func Lang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// Languages returns the tags of all embedded translations.
func Languages() []string {
	ensure()
	mu.RLock()
	defer mu.RUnlock()
	var tags []string
	for _, tag := range bundle.LanguageTags() {
		tags = append(tags, tag.String())
	}
	return tags
}

func ensure() {
	mu.RLock()
	ready := localizer != nil
	mu.RUnlock()
	if !ready {
		// The embedded files are known to parse.
		_ = Init("en")
	}
}

// T translates the message with the given ID. The ID itself is returned if
// there is no such message.
func T(messageID string) string {
	return TData(messageID, nil)
}

// TData translates a message and fills its template with data.
func TData(messageID string, data map[string]any) string {
	ensure()
	mu.RLock()
	l := localizer
	mu.RUnlock()
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
	if err != nil {
		return messageID
	}
	return msg
}
