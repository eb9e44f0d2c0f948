// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - BackendURL: Origin of the polls backend (default: http://localhost:8000)
  - SessionCookie: Name of the backend's session cookie (default: session)
  - CSRFSecret: HMAC secret for form tokens (required)
  - BackendTimeout: Per-call timeout for backend requests (default: none)
  - SecureCookies: Set the Secure attribute on relayed cookies

# CLI Flags

	-p                Server port
	-backend          Backend origin
	-session-cookie   Session cookie name
	-csrf-secret      CSRF secret
	-timeout          Backend timeout (5s, 1m, or seconds)
	-secure-cookies   true|false

# Environment Variables

Flags fall back to environment variables, bound through viper:

	PORT            → -p
	BACKEND_URL     → -backend
	SESSION_COOKIE  → -session-cookie
	CSRF_SECRET     → -csrf-secret
	BACKEND_TIMEOUT → -timeout
	SECURE_COOKIES  → -secure-cookies

CLI flags take precedence over environment variables. LoadDotEnv reads a
.env file into the environment first; variables already set are kept.

# Example

	// In main.go
	_ = cliparse.LoadDotEnv(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	client := apiclient.New(cfg.BackendURL, &http.Client{Timeout: cfg.BackendTimeout})
*/
package cliparse
