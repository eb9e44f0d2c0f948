// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/decidebox/auth"
	"github.com/danielhkuo/decidebox/cliparse"
)

// TestCSRFSecret signs form tokens in tests
const TestCSRFSecret = "test-csrf-secret"

// TestCSRFSeed is the seed cookie value tests present
const TestCSRFSeed = "test-seed"

// GetTestConfig returns a standard test configuration pointing at backendURL
func GetTestConfig(backendURL string) cliparse.Config {
	return cliparse.Config{
		Port:          3000,
		BackendURL:    backendURL,
		SessionCookie: SessionCookie,
		CSRFSecret:    TestCSRFSecret,
	}
}

// MakeRequest creates an HTTP test request carrying cookies
func MakeRequest(method, path string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// MakeFormRequest creates a form POST with a valid CSRF seed and token
func MakeFormRequest(path string, form url.Values, cookies ...*http.Cookie) *http.Request {
	if form == nil {
		form = url.Values{}
	}
	if form.Get(auth.CSRFFieldName) == "" {
		form.Set(auth.CSRFFieldName, auth.GenerateCSRFToken(TestCSRFSeed, TestCSRFSecret))
	}

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(CSRFCookie())
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// CSRFCookie returns the seed cookie matching MakeFormRequest's token
func CSRFCookie() *http.Cookie {
	return &http.Cookie{Name: auth.CSRFCookieName, Value: TestCSRFSeed}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect checks for a 303 to location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	AssertStatus(t, w, http.StatusSeeOther)
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %q, got %q", location, got)
	}
}

// AssertContains checks that the body contains every substring
func AssertContains(t *testing.T, w *httptest.ResponseRecorder, substrs ...string) {
	t.Helper()
	body := w.Body.String()
	for _, s := range substrs {
		if !strings.Contains(body, s) {
			t.Errorf("Expected body to contain %q. Body: %s", s, body)
		}
	}
}

// AssertNotContains checks that the body contains none of the substrings
func AssertNotContains(t *testing.T, w *httptest.ResponseRecorder, substrs ...string) {
	t.Helper()
	body := w.Body.String()
	for _, s := range substrs {
		if strings.Contains(body, s) {
			t.Errorf("Expected body not to contain %q", s)
		}
	}
}

// ResponseCookie finds a cookie set on the response
func ResponseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
