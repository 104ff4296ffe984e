package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"reliefdesk/internal/domain"
	"reliefdesk/internal/donation"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv               string
	Port                 string
	DefaultLocale        string
	GeoIPDBPath          string
	AllowedOrigins       []string
	IDScheme             string
	PresetAmounts        []int64
	SessionIdleTTL       time.Duration
	SessionSweepInterval time.Duration
	SessionCookieSecure  bool
	HTTPReadTimeout      time.Duration
	HTTPWriteTimeout     time.Duration
	HTTPIdleTimeout      time.Duration
	RateLimitPerMin      int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:               getEnv("APP_ENV", "development"),
		Port:                 getEnv("PORT", "8080"),
		DefaultLocale:        getEnv("DEFAULT_LOCALE", "en"),
		GeoIPDBPath:          os.Getenv("GEOIP_DB_PATH"),
		AllowedOrigins:       splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		IDScheme:             getEnv("DONATION_ID_SCHEME", donation.IDSchemeRandom),
		SessionIdleTTL:       time.Minute * time.Duration(getEnvInt("SESSION_IDLE_TTL_MINUTES", 30)),
		SessionSweepInterval: time.Second * time.Duration(getEnvInt("SESSION_SWEEP_INTERVAL_SECONDS", 60)),
		SessionCookieSecure:  getEnvBool("SESSION_COOKIE_SECURE", false),
		HTTPReadTimeout:      time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:     time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:      time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:      getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	presets, err := parsePresets(getEnv("PRESET_AMOUNTS", "50,100,250,500"))
	if err != nil {
		return nil, err
	}
	cfg.PresetAmounts = presets

	if _, err := donation.NewIDSource(cfg.IDScheme); err != nil {
		return nil, fmt.Errorf("DONATION_ID_SCHEME: %w", err)
	}

	return cfg, nil
}

// LoadEnvFiles loads optional dotenv files into the process environment and
// returns the ones that were found. Variables already set are never
// overridden, and earlier files win over later ones, so .env.local beats .env.
func LoadEnvFiles(files ...string) []string {
	if len(files) == 0 {
		files = []string{".env.local", ".env"}
	}
	var loaded []string
	for _, f := range files {
		if err := godotenv.Load(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	return loaded
}

func parsePresets(raw string) ([]int64, error) {
	var out []int64
	for _, part := range splitList(raw) {
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("PRESET_AMOUNTS: invalid amount %q", part)
		}
		if v < domain.MinimumAmount {
			return nil, fmt.Errorf("PRESET_AMOUNTS: %d is below the minimum of %d", v, domain.MinimumAmount)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("PRESET_AMOUNTS must list at least one amount")
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
