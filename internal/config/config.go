package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":3000"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout (ex: 2s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SeedFile    string // path to a bookmarks yaml loaded at startup (optional)
	SeedDefault bool   // seed the built-in bookmark when SeedFile is empty

	AllowedHosts []string // optional, restrict bookmark routes to specific Host headers
	AllowedCIDRS []string // optional, restrict operational endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	RateLimitBurst        int // write requests allowed in a burst per client IP (0 = disabled)
	RateLimitRefillPerMin int // tokens refilled per client IP per minute

	MetricsNamespace string // prometheus namespace (ex: "bookmarks")
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("BOOKMARKS_LISTEN_PORT", ":3000"),
		ShutdownTimeout: mustDuration("BOOKMARKS_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("BOOKMARKS_REQUEST_TIMEOUT", 2*time.Second),

		// Logging
		LogLevel:  getenv("BOOKMARKS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("BOOKMARKS_PRETTY_LOG", true),

		// Seeding
		SeedFile:    getenv("BOOKMARKS_SEED_FILE", ""), // Optional, empty = built-in seed
		SeedDefault: mustBool("BOOKMARKS_SEED_DEFAULT", true),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("BOOKMARKS_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("BOOKMARKS_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("BOOKMARKS_TRUST_PROXY", false),

		// Rate limiting
		RateLimitBurst:        getenvInt("BOOKMARKS_RATE_LIMIT_BURST", 0),
		RateLimitRefillPerMin: getenvInt("BOOKMARKS_RATE_LIMIT_REFILL_PER_MIN", 60),

		// Metrics
		MetricsNamespace: getenv("BOOKMARKS_METRICS_NAMESPACE", "bookmarks"),
	}

	// Log config only in debug mode
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", *cfg)
	}

	return cfg
}

// Validate reports settings that cannot be used to start the service.
func (c *Config) Validate() error {
	if c.ListenPort == "" {
		return fmt.Errorf("BOOKMARKS_LISTEN_PORT must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("BOOKMARKS_SHUTDOWN_TIMEOUT must be > 0, got %v", c.ShutdownTimeout)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("BOOKMARKS_REQUEST_TIMEOUT must be > 0, got %v", c.RequestTimeout)
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("BOOKMARKS_RATE_LIMIT_BURST must be >= 0, got %d", c.RateLimitBurst)
	}
	if c.RateLimitBurst > 0 && c.RateLimitRefillPerMin < 1 {
		return fmt.Errorf("BOOKMARKS_RATE_LIMIT_REFILL_PER_MIN must be >= 1, got %d", c.RateLimitRefillPerMin)
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
