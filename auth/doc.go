// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth carries the browser's backend session and protects forms.

# Sessions

The backend identifies users with a cookie. The front end never interprets
it; it only relays it. On login the backend's cookies are re-issued on the
front end's origin:

	auth.Relay(w, backendCookies, secure)

On later requests the cookie is read back into an explicit Session and
handed to the API client, which attaches it to the outgoing call:

	sess := auth.FromRequest(r, "session")
	user, err := client.UserInfo(ctx, sess)

Middleware stores the session in the request context so handlers can use
SessionFromContext instead of re-reading cookies.

# CSRF Tokens

Each browser gets a random seed cookie (GenerateID). Forms carry the HMAC
of that seed:

	token := auth.GenerateCSRFToken(seed, secret)
	err := auth.ValidateCSRFToken(seed, token, secret)

The token is URL-safe base64 without padding and deterministic for a given
seed and secret, so nothing is stored server-side.
*/
package auth
