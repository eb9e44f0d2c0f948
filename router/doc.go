// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for DecideBox.

# Route Registration

NewRouter creates a chi router with all pages:

	handler := router.NewRouter(client, renderer, cfg)

Every request gets a request ID, the real client IP, logging and panic
recovery. Pages additionally get the session and CSRF middleware.

# Endpoints

Health and assets:

	GET /health
	GET /static/*

Browsing:

	GET /                 - Home, ?category= tab
	GET /explore          - Search, ?q=&category=&sort=
	GET /category/{name}  - Redirects to /explore?category=

Polls:

	GET  /poll/new         - New poll form
	POST /poll/new         - Add/remove choices or create
	GET  /poll/{id}        - Vote form
	POST /poll/{id}/vote   - Submit a vote
	GET  /poll/{id}/result - Results, ?voted= highlights a choice

Accounts:

	GET/POST /login
	GET/POST /signup

My page (redirects to /login without a session):

	GET      /mypage       - ?tab=my-polls|participated
	GET/POST /mypage/edit  - Profile form

Anything else renders the 404 page.
*/
package router
