// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Names shared by the CSRF middleware, templates and tests
const (
	CSRFCookieName = "csrf_seed"
	CSRFFieldName  = "csrf_token"
)

var (
	ErrInvalidCSRFToken = errors.New("invalid csrf token")
	ErrMissingCSRFSeed  = errors.New("missing csrf seed")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateCSRFToken derives the form token for a browser's CSRF seed.
// Deterministic, so nothing needs to be stored server-side.
func GenerateCSRFToken(seed, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(seed))
	sum := h.Sum(nil)
	// URL-safe base64 without padding fits in a hidden form field as-is
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateCSRFToken checks a submitted token against the browser's seed
func ValidateCSRFToken(seed, token, secret string) error {
	if seed == "" {
		return ErrMissingCSRFSeed
	}
	expected := GenerateCSRFToken(seed, secret)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidCSRFToken
	}
	return nil
}
