package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEndpoint is the talent API the record is posted to.
const DefaultEndpoint = "https://talent-backend-986559184516.us-central1.run.app/talent"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Submit    SubmitConfig
	Browser   BrowserConfig
	Store     StoreConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the local popup API.
type ServerConfig struct {
	Host string // default: "127.0.0.1"
	Port int    // default: 8731
	Mode string // "debug", "release", "test"; default: "release"
}

// SubmitConfig controls delivery of the talent record.
type SubmitConfig struct {
	// Endpoint is the URL the record is POSTed to.
	Endpoint string

	// Timeout bounds one submission. Zero means no timeout: a hung
	// endpoint keeps the submission pending until the caller gives up.
	Timeout time.Duration // default: 0
}

// BrowserConfig controls how the active tab is reached.
type BrowserConfig struct {
	// SiteMarker must appear in the tab URL for extraction to run.
	SiteMarker string // default: "linkedin.com"

	// CDPURL attaches to an already running Chrome (started with
	// --remote-debugging-port). When empty a browser is launched.
	CDPURL string

	// Headless controls whether a launched browser runs headless.
	Headless bool // default: false

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// StartURL is opened in a launched browser.
	StartURL string

	// Cookies seeds a launched browser with the site's session cookies
	// read from the user's local browser profiles.
	Cookies bool // default: false

	// AcceptLanguage is sent with every page request. Role lines are only
	// parsed correctly from the English "<role> at <company>" form.
	AcceptLanguage string // default: "en-US,en;q=0.9"
}

// StoreConfig selects the manual-defaults backend.
type StoreConfig struct {
	// Backend is "sqlite", "redis" or "memory".
	Backend string // default: "sqlite"

	// DataDir holds the sqlite database.
	DataDir string // default: "~/.talentclip"

	RedisAddr     string // default: "127.0.0.1:6379"
	RedisPassword string
	RedisDB       int
}

// RateLimitConfig controls per-client rate limiting of the popup API.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client.
	RequestsPerSecond float64 // default: 10

	// Burst is the maximum burst size per client.
	Burst int // default: 20
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is applied first when present;
// variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: envOr("TALENTCLIP_HOST", "127.0.0.1"),
			Port: envIntOr("TALENTCLIP_PORT", 8731),
			Mode: envOr("TALENTCLIP_MODE", "release"),
		},
		Submit: SubmitConfig{
			Endpoint: envOr("TALENTCLIP_ENDPOINT", DefaultEndpoint),
			Timeout:  envDurationOr("TALENTCLIP_SUBMIT_TIMEOUT", 0),
		},
		Browser: BrowserConfig{
			SiteMarker:     envOr("TALENTCLIP_SITE_MARKER", "linkedin.com"),
			CDPURL:         os.Getenv("TALENTCLIP_CDP_URL"),
			Headless:       envBoolOr("TALENTCLIP_HEADLESS", false),
			NoSandbox:      envBoolOr("TALENTCLIP_NO_SANDBOX", false),
			BrowserBin:     os.Getenv("TALENTCLIP_BROWSER_BIN"),
			StartURL:       os.Getenv("TALENTCLIP_START_URL"),
			Cookies:        envBoolOr("TALENTCLIP_BROWSER_COOKIES", false),
			AcceptLanguage: envOr("TALENTCLIP_ACCEPT_LANGUAGE", "en-US,en;q=0.9"),
		},
		Store: StoreConfig{
			Backend:       strings.ToLower(envOr("TALENTCLIP_STORE", "sqlite")),
			DataDir:       envOr("TALENTCLIP_DATA_DIR", defaultDataDir()),
			RedisAddr:     envOr("TALENTCLIP_REDIS_ADDR", "127.0.0.1:6379"),
			RedisPassword: os.Getenv("TALENTCLIP_REDIS_PASSWORD"),
			RedisDB:       envIntOr("TALENTCLIP_REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("TALENTCLIP_RATE_RPS", 10),
			Burst:             envIntOr("TALENTCLIP_RATE_BURST", 20),
		},
		Log: LogConfig{
			Level:  envOr("TALENTCLIP_LOG_LEVEL", "info"),
			Format: envOr("TALENTCLIP_LOG_FORMAT", "text"),
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".talentclip"
	}
	return filepath.Join(home, ".talentclip")
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
