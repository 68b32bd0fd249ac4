// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables once at startup
// and are immutable thereafter.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// APIBaseURL is the public base URL of this API, used to build the
	// confirmation links embedded in emails. Required.
	APIBaseURL string

	// WebBaseURL is the base URL of the web frontend, used as the redirect
	// target of the confirmation endpoints. Required.
	WebBaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFormat selects the slog handler: "json" (default) or "text" for
	// colored development output.
	LogFormat string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MailLocale selects the language of outgoing emails.
	// Defaults to "pt-BR"; "en-US" is also supported.
	MailLocale string

	// MailFromName and MailFromAddress are the fixed sender identity on
	// every outgoing email.
	MailFromName    string
	MailFromAddress string

	// SMTP connection settings. SMTPHost is required; credentials are
	// optional for unauthenticated local relays.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		MailLocale:      getEnv("MAIL_LOCALE", "pt-BR"),
		MailFromName:    getEnv("MAIL_FROM_NAME", "Equipe plann.er"),
		MailFromAddress: getEnv("MAIL_FROM_ADDRESS", "oi@plann.er"),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPUsername:    os.Getenv("SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
	}

	var missing []string

	for _, v := range []struct {
		name string
		dst  *string
	}{
		{"DATABASE_URL", &cfg.DatabaseURL},
		{"API_BASE_URL", &cfg.APIBaseURL},
		{"WEB_BASE_URL", &cfg.WebBaseURL},
		{"SMTP_HOST", &cfg.SMTPHost},
	} {
		*v.dst = os.Getenv(v.name)
		if *v.dst == "" {
			missing = append(missing, v.name)
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt is getEnv for integer values; unparsable values fall back too.
func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
