// Package i18n resolves the request language and prints UI copy in German or
// English.
package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vbonduro/lookbook/internal/domain"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "lookbook_lang"
)

// supported lists the UI languages. The first entry is the fallback.
var supported = []language.Tag{language.German, language.English}

var matcher = language.NewMatcher(supported)

func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

func Default() language.Tag {
	return supported[0]
}

// ParseTag maps value to a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return Default(), false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default(), false
	}
	return supported[idx], true
}

// ResolveTag determines the language of r: the lang query parameter first, then
// the cookie, then Accept-Language. The bool reports whether the query parameter
// chose the tag and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}

	if v := r.URL.Query().Get(LangParam); v != "" {
		if tag, ok := ParseTag(v); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return supported[idx], false
			}
		}
	}

	return Default(), false
}

// SetLanguageCookie persists tag on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Localizer prints messages for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

func NewLocalizer(tag language.Tag) *Localizer {
	if _, ok := ParseTag(tag.String()); !ok {
		tag = Default()
	}
	return &Localizer{tag: tag, printer: message.NewPrinter(tag)}
}

// ForLang returns a Localizer for a language code such as "de" or "en".
func ForLang(code string) *Localizer {
	tag, _ := ParseTag(code)
	return NewLocalizer(tag)
}

// T formats the message registered under key.
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Lang returns the base language code, e.g. "de".
func (l *Localizer) Lang() string {
	base, _ := l.tag.Base()
	return base.String()
}

func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// StyleLabel picks the style label matching the language.
func (l *Localizer) StyleLabel(info domain.StyleInfo) string {
	if l.Lang() == "de" && info.LabelDE != "" {
		return info.LabelDE
	}
	return info.Label
}

// Number formats n with the language's digit grouping.
func (l *Localizer) Number(n any) string {
	return l.printer.Sprint(n)
}
