// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap the router with request logging:

	r.Use(chimw.RequestID, middleware.WithLogging)

Logs request start (method, path, remote) and completion (status,
duration_ms). Both lines carry the chi request ID.

# Session

Session copies the backend's session cookie into the request context:

	r.Use(middleware.Session(cfg.SessionCookie))
	sess := auth.SessionFromContext(r.Context())

RequireSession sends anonymous visitors to the login page.

# CSRF

CSRF issues a per-browser seed cookie and checks the csrf_token form field
on every POST. Templates read the token with CSRFToken(r.Context()).

# JSON Helpers

Write JSON responses in the backend's error shape:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
*/
package middleware
