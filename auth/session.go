// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"net/http"
)

// Session is the backend-issued session, carried explicitly instead of
// living in ambient browser state. The zero value is an anonymous session.
type Session struct {
	Cookies []*http.Cookie
}

// Authenticated reports whether any session cookie is present
func (s Session) Authenticated() bool {
	for _, c := range s.Cookies {
		if c.Value != "" {
			return true
		}
	}
	return false
}

// Apply attaches the session cookies to an outgoing backend request
func (s Session) Apply(req *http.Request) {
	for _, c := range s.Cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
}

// FromRequest reads the named session cookies from a browser request
func FromRequest(r *http.Request, names ...string) Session {
	var s Session
	for _, name := range names {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			continue
		}
		s.Cookies = append(s.Cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return s
}

// Relay re-issues backend cookies on the front end's own origin.
// Domain is dropped and the cookie is scoped to the whole site.
func Relay(w http.ResponseWriter, cookies []*http.Cookie, secure bool) {
	for _, c := range cookies {
		http.SetCookie(w, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     "/",
			Expires:  c.Expires,
			MaxAge:   c.MaxAge,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

type sessionKey struct{}

// WithSession stores s in ctx
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by WithSession, or an
// anonymous session
func SessionFromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey{}).(Session)
	return s
}
