// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/decidebox/auth"
)

// seedBytes is the length of a new browser's CSRF seed
const seedBytes = 16

type csrfKey struct{}

// CSRF issues each browser a seed cookie and rejects state-changing
// requests whose form token is not the HMAC of that seed.
// The token for the current request is available through CSRFToken.
func CSRF(secret string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var seed string
			if c, err := r.Cookie(auth.CSRFCookieName); err == nil {
				seed = c.Value
			}

			if !safeMethod(r.Method) {
				token := r.PostFormValue(auth.CSRFFieldName)
				if err := auth.ValidateCSRFToken(seed, token, secret); err != nil {
					slog.Warn("csrf check failed",
						"path", r.URL.Path,
						"error", err,
						"request_id", chimw.GetReqID(r.Context()),
					)
					http.Error(w, "Forbidden - invalid CSRF token", http.StatusForbidden)
					return
				}
			}

			if seed == "" {
				var err error
				seed, err = auth.GenerateID(seedBytes)
				if err != nil {
					slog.Error("failed to generate csrf seed", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     auth.CSRFCookieName,
					Value:    seed,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), csrfKey{}, auth.GenerateCSRFToken(seed, secret))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CSRFToken returns the form token for the request, or "" outside CSRF
func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfKey{}).(string)
	return token
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
