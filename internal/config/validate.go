package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Validate performs checks common to every binary.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug|info|warn|error (got %q)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	palette, err := ParsePalette(c.Console.PaletteRaw)
	if err != nil {
		return fmt.Errorf("console.palette: %w", err)
	}
	c.Console.Palette = palette

	return nil
}

// ValidateServer checks the sections geofence-api needs.
func (c *Config) ValidateServer() error {
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}
	if c.Server.MutationsPerMinute <= 0 {
		return fmt.Errorf("server.mutations_per_minute must be > 0 (got %d)", c.Server.MutationsPerMinute)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}
	return nil
}

// ValidateConsole checks the sections geofence-console needs.
func (c *Config) ValidateConsole() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL (got %q)", c.API.BaseURL)
	}
	if c.API.Token == "" {
		return errors.New("api.token is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be > 0 (got %v)", c.API.Timeout)
	}
	return nil
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ParsePalette parses a comma-separated list of hex colours
// (e.g. "#3B82F6,#EF4444"). An empty string returns a nil slice.
func ParsePalette(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	palette := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !hexColor.MatchString(p) {
			return nil, fmt.Errorf("invalid colour %q", p)
		}
		palette = append(palette, strings.ToUpper(p))
	}

	return palette, nil
}
