package config

import (
	"time"
)

// Config is the root configuration shared by geofence-api and geofence-console.
// Each binary validates the sections it uses (see ValidateServer and
// ValidateConsole); Load only checks what both need.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	API      APIConfig      `yaml:"api"`
	Console  ConsoleConfig  `yaml:"console"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host               string        `yaml:"host"                 env:"SERVER_HOST"                 env-default:"0.0.0.0"`
	Port               int           `yaml:"port"                 env:"SERVER_PORT"                 env-default:"8080"`
	ReadTimeout        time.Duration `yaml:"read_timeout"         env:"SERVER_READ_TIMEOUT"         env-default:"10s"`
	WriteTimeout       time.Duration `yaml:"write_timeout"        env:"SERVER_WRITE_TIMEOUT"        env-default:"30s"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"         env:"SERVER_IDLE_TIMEOUT"         env-default:"60s"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"     env:"SERVER_SHUTDOWN_TIMEOUT"     env-default:"10s"`
	MaxBodyBytes       int64         `yaml:"max_body_bytes"       env:"SERVER_MAX_BODY_BYTES"       env-default:"1048576"`
	MutationsPerMinute int           `yaml:"mutations_per_minute" env:"SERVER_MUTATIONS_PER_MINUTE" env-default:"60"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN              string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns         int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns         int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime  time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime  time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	StatementTimeout time.Duration `yaml:"statement_timeout"  env:"DATABASE_STATEMENT_TIMEOUT"  env-default:"5s"` // 0 = server default
}

// AuthConfig holds access token settings. Tokens are minted by operators,
// so there is no refresh flow.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"geofence"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"12h"`
}

// APIConfig tells the console where the persistence collaborator lives.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"GEOFENCE_API_URL"     env-default:"http://localhost:8080"`
	Token   string        `yaml:"token"    env:"GEOFENCE_API_TOKEN"`
	Timeout time.Duration `yaml:"timeout"  env:"GEOFENCE_API_TIMEOUT" env-default:"15s"`
}

// ConsoleConfig holds display settings of the console.
type ConsoleConfig struct {
	PaletteRaw string `yaml:"palette" env:"CONSOLE_PALETTE"`

	// Palette is parsed from PaletteRaw during validation. Empty means the
	// built-in palette.
	Palette []string `yaml:"-" env:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
