package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/vbonduro/lookbook/internal/domain"
)

func TestResolveTagPrecedence(t *testing.T) {
	t.Run("query param wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
		req.Header.Set("Accept-Language", "de")
		req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "de"})

		tag, persist := ResolveTag(req)
		assert.Equal(t, language.English, tag)
		assert.True(t, persist)
	})

	t.Run("cookie wins over accept-language", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "de-DE")
		req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "en"})

		tag, persist := ResolveTag(req)
		assert.Equal(t, language.English, tag)
		assert.False(t, persist)
	})

	t.Run("accept-language fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "en-GB, de;q=0.5")

		tag, _ := ResolveTag(req)
		assert.Equal(t, language.English, tag)
	})

	t.Run("default is german", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		tag, persist := ResolveTag(req)
		assert.Equal(t, language.German, tag)
		assert.False(t, persist)
	})
}

func TestResolveTagInvalidValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?lang=not-a-lang", nil)
	req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "fr"})
	req.Header.Set("Accept-Language", "ja")

	tag, persist := ResolveTag(req)
	assert.Equal(t, Default(), tag)
	assert.False(t, persist)
}

func TestSetLanguageCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetLanguageCookie(rec, language.English)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, LangCookieName, cookies[0].Name)
	assert.Equal(t, "en", cookies[0].Value)

	SetLanguageCookie(nil, language.English)
}

func TestLocalizerTranslates(t *testing.T) {
	de := ForLang("de")
	en := ForLang("en")

	assert.Equal(t, "3 von 10 bewertet", de.T("gallery.progress", 3, 10))
	assert.Equal(t, "3 of 10 rated", en.T("gallery.progress", 3, 10))
	assert.Equal(t, "Noch 2 Bewertung(en) bis zu den Details", de.T("analytics.remaining", 2))
	assert.Equal(t, "de", de.Lang())
	assert.Equal(t, "en", en.Lang())
}

func TestLocalizerUnknownLanguageFallsBack(t *testing.T) {
	l := ForLang("fr")
	assert.Equal(t, "de", l.Lang())
	assert.Equal(t, "Alle", l.T("filter.all"))
}

func TestStyleLabel(t *testing.T) {
	info := domain.StyleInfo{Style: domain.StyleHot, Label: "Hot", LabelDE: "Heiß"}

	assert.Equal(t, "Heiß", ForLang("de").StyleLabel(info))
	assert.Equal(t, "Hot", ForLang("en").StyleLabel(info))
	assert.Equal(t, "Clean", ForLang("de").StyleLabel(domain.StyleInfo{Label: "Clean"}))
}

func TestEveryMessageHasBothLanguages(t *testing.T) {
	for _, m := range messages {
		assert.NotEmpty(t, m.de, m.key)
		assert.NotEmpty(t, m.en, m.key)
	}
}
