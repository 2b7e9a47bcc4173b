package web

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/lookbook/internal/i18n"
)

// SessionCookieName carries the visitor's session id.
const SessionCookieName = "lookbook_session"

const sessionCookieMaxAge = 365 * 24 * time.Hour

type ctxKey int

const (
	sessionKey ctxKey = iota
	localeKey
)

// withSession makes sure every request carries a session id, issuing a new
// cookie when the visitor has none or an unparseable one.
func withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(SessionCookieName); err == nil {
			if u, err := uuid.Parse(c.Value); err == nil {
				id = u.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(sessionCookieMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, id)))
	})
}

// withLocale resolves the UI language and stores a Localizer on the request.
func withLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag, persist := i18n.ResolveTag(r)
		if persist {
			i18n.SetLanguageCookie(w, tag)
		}
		ctx := context.WithValue(r.Context(), localeKey, i18n.NewLocalizer(tag))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey).(string)
	return id
}

func localizer(r *http.Request) *i18n.Localizer {
	if l, ok := r.Context().Value(localeKey).(*i18n.Localizer); ok {
		return l
	}
	return i18n.NewLocalizer(i18n.Default())
}
