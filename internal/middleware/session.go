package middleware

import (
	"context"
	"net/http"
	"strings"

	"reliefdesk/internal/session"
)

// SessionCookie names the cookie that carries the donation session id.
const SessionCookie = "donation_session"

// SessionHeader lets non-browser clients pass the session id explicitly.
const SessionHeader = "X-Session-ID"

type sessionContextKey struct{}

// Session attaches a session id to every request, minting one (and setting
// the cookie) when the caller did not present any.
func Session(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sessionIDFromRequest(r)
			if id == "" {
				id = session.NewID()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(SessionHeader, id)
			ctx := context.WithValue(r.Context(), sessionContextKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionIDFromRequest(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(SessionHeader)); v != "" && len(v) <= 128 {
		return v
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		if v := strings.TrimSpace(c.Value); v != "" && len(v) <= 128 {
			return v
		}
	}
	return ""
}

// SessionIDFromContext returns the session id set by Session.
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sessionContextKey{}).(string); ok {
		return v
	}
	return ""
}

// ContextWithSessionID stores a session id in ctx.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	if strings.TrimSpace(id) == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey{}, id)
}
