// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the DecideBox web front end.

DecideBox is a polling site: users browse polls by category, search,
vote on a single choice and see the results. Accounts and poll data live
in a separate REST backend; this server renders the pages and forwards
the user's session to it.

# Starting the Server

The server requires a CSRF secret and the backend's address:

	CSRF_SECRET=... BACKEND_URL=http://localhost:8000 go run .

Or with flags:

	go run . -p 3000 -backend http://localhost:8000 -csrf-secret ...

A .env file in the working directory is loaded first.

# Configuration

Required settings:

  - CSRF_SECRET (-csrf-secret): Secret for form tokens

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - BACKEND_URL (-backend): Backend origin (default: http://localhost:8000)
  - SESSION_COOKIE (-session-cookie): Backend session cookie name (default: session)
  - BACKEND_TIMEOUT (-timeout): Backend request timeout (default: none)
  - SECURE_COOKIES (-secure-cookies): Mark relayed cookies Secure

# Architecture

  - handlers: Page handlers
  - router: Route definitions using chi
  - middleware: Logging, session, CSRF, JSON helpers
  - apiclient: Typed client for the backend's /api/v0 endpoints
  - polls: Vote tallies, filters and form validation
  - views: Templates, view models and flash messages
  - models: Backend request/response types and validation
  - categories: Poll category table
  - auth: Session cookies and CSRF tokens
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
