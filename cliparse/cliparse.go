package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port           int
	BackendURL     string
	SessionCookie  string
	CSRFSecret     string
	BackendTimeout time.Duration
	SecureCookies  bool
}

// Environment variables backing each setting
const (
	envPort           = "PORT"
	envBackendURL     = "BACKEND_URL"
	envSessionCookie  = "SESSION_COOKIE"
	envCSRFSecret     = "CSRF_SECRET"
	envBackendTimeout = "BACKEND_TIMEOUT"
	envSecureCookies  = "SECURE_COOKIES"
)

// LoadDotEnv loads a .env file into the process environment.
// A missing file is not an error; existing variables are not overridden.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ParseFlags reads flags, then environment, then defaults
func ParseFlags(args []string) (Config, error) {
	fset := flag.NewFlagSet("decidebox", flag.ContinueOnError)

	port := fset.String("p", "", "Server port")
	backend := fset.String("backend", "", "Backend origin, without /api/v0")
	cookie := fset.String("session-cookie", "", "Name of the backend's session cookie")
	// Secrets (prefer env variables, but allow CLI for dev)
	secret := fset.String("csrf-secret", "", "CSRF HMAC secret (prefer env)")
	timeout := fset.String("timeout", "", "Backend request timeout, e.g. 5s (0 disables)")
	secure := fset.String("secure-cookies", "", "Mark cookies Secure (true when served over HTTPS)")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault("port", "3000")
	v.SetDefault("backend_url", "http://localhost:8000")
	v.SetDefault("session_cookie", "session")
	v.SetDefault("backend_timeout", "0")
	v.SetDefault("secure_cookies", "false")

	_ = v.BindEnv("port", envPort)
	_ = v.BindEnv("backend_url", envBackendURL)
	_ = v.BindEnv("session_cookie", envSessionCookie)
	_ = v.BindEnv("csrf_secret", envCSRFSecret)
	_ = v.BindEnv("backend_timeout", envBackendTimeout)
	_ = v.BindEnv("secure_cookies", envSecureCookies)

	// Flags that were given win over everything viper knows about
	flagKeys := map[string]string{
		"p":              "port",
		"backend":        "backend_url",
		"session-cookie": "session_cookie",
		"csrf-secret":    "csrf_secret",
		"timeout":        "backend_timeout",
		"secure-cookies": "secure_cookies",
	}
	values := map[string]*string{
		"p":              port,
		"backend":        backend,
		"session-cookie": cookie,
		"csrf-secret":    secret,
		"timeout":        timeout,
		"secure-cookies": secure,
	}
	fset.Visit(func(f *flag.Flag) {
		v.Set(flagKeys[f.Name], *values[f.Name])
	})

	var cfg Config
	var err error

	cfg.Port, err = strconv.Atoi(strings.TrimSpace(v.GetString("port")))
	if err != nil || cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, errors.New("invalid port (use -p or PORT env)")
	}

	cfg.BackendURL = strings.TrimRight(strings.TrimSpace(v.GetString("backend_url")), "/")
	u, err := url.Parse(cfg.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, fmt.Errorf("invalid backend URL %q (use -backend or BACKEND_URL env)", cfg.BackendURL)
	}

	cfg.SessionCookie = strings.TrimSpace(v.GetString("session_cookie"))
	if cfg.SessionCookie == "" {
		return Config{}, errors.New("session cookie name must not be empty")
	}

	cfg.BackendTimeout, err = parseTimeout(v.GetString("backend_timeout"))
	if err != nil {
		return Config{}, err
	}

	cfg.SecureCookies, err = strconv.ParseBool(strings.TrimSpace(v.GetString("secure_cookies")))
	if err != nil {
		return Config{}, errors.New("invalid secure cookies flag (use -secure-cookies or SECURE_COOKIES env)")
	}

	// Secrets - MUST be provided
	cfg.CSRFSecret = v.GetString("csrf_secret")
	if cfg.CSRFSecret == "" {
		return Config{}, errors.New("CSRF_SECRET required")
	}

	return cfg, nil
}

// parseTimeout accepts a duration string or a bare number of seconds
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if secs, err := strconv.Atoi(s); err == nil {
		if secs < 0 {
			return 0, errors.New("backend timeout must not be negative")
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid backend timeout %q (use -timeout or BACKEND_TIMEOUT env)", s)
	}
	if d < 0 {
		return 0, errors.New("backend timeout must not be negative")
	}
	return d, nil
}
