// Package locale holds the translated strings shown in page titles and views.
package locale

import (
	"embed"
	"fmt"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var messageFS embed.FS

// Default is the language of the original site.
var Default = language.Indonesian

// Supported lists the languages with a message file.
var Supported = []language.Tag{language.Indonesian, language.English}

// Translator resolves message ids for one language.
type Translator struct {
	lang      language.Tag
	localizer *i18n.Localizer
}

func newBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(Default)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	entries, err := messageFS.ReadDir("messages")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		name := path.Join("messages", e.Name())
		data, err := messageFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}
	return bundle, nil
}

// New returns a translator for lang (a BCP 47 tag such as "id" or "en-US").
// Unsupported or malformed tags fall back to Default.
func New(lang string) (*Translator, error) {
	bundle, err := newBundle()
	if err != nil {
		return nil, err
	}
	tag := Match(lang)
	return &Translator{
		lang:      tag,
		localizer: i18n.NewLocalizer(bundle, tag.String()),
	}, nil
}

// Match picks the closest supported language for lang.
func Match(lang string) language.Tag {
	want, err := language.Parse(lang)
	if err != nil {
		return Default
	}
	matcher := language.NewMatcher(Supported)
	_, idx, conf := matcher.Match(want)
	if conf == language.No {
		return Default
	}
	return Supported[idx]
}

func (t *Translator) Lang() language.Tag { return t.lang }

// T returns the message for id, or id itself when it is unknown.
func (t *Translator) T(id string, data map[string]any) string {
	s, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return s
}

// Count returns the pluralized message for id with {{.Count}} set to n.
func (t *Translator) Count(id string, n int) string {
	s, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  n,
		TemplateData: map[string]any{"Count": n},
	})
	if err != nil {
		return id
	}
	return s
}
