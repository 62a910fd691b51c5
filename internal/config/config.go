// Package config loads console settings from defaults, a .env file, the
// FBCONSOLE_* environment and command line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. FBCONSOLE_API_BASE_URL
const EnvPrefix = "FBCONSOLE"

// Session backends
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Setting keys
const (
	KeyAPIBaseURL     = "api_base_url"
	KeyRequestTimeout = "request_timeout"
	KeyRateLimit      = "rate_limit"
	KeyRateBurst      = "rate_burst"
	KeySessionBackend = "session_backend"
	KeySessionDir     = "session_dir"
	KeyRedisURL       = "redis_url"
	KeyRedisPrefix    = "redis_prefix"
	KeyListenAddr     = "listen_addr"
	KeyOutput         = "output"
	KeyVerbose        = "verbose"
	KeyLogLevel       = "log_level"
)

var (
	ErrInvalidBaseURL = errors.New("api_base_url must be an absolute http(s) URL")
	ErrInvalidBackend = errors.New("session_backend must be file, memory or redis")
	ErrInvalidOutput  = errors.New("output must be text or json")
)

// Config holds every console setting
type Config struct {
	APIBaseURL     string        `mapstructure:"api_base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateBurst      int           `mapstructure:"rate_burst"`
	SessionBackend string        `mapstructure:"session_backend"`
	SessionDir     string        `mapstructure:"session_dir"`
	RedisURL       string        `mapstructure:"redis_url"`
	RedisPrefix    string        `mapstructure:"redis_prefix"`
	ListenAddr     string        `mapstructure:"listen_addr"`
	Output         string        `mapstructure:"output"`
	Verbose        bool          `mapstructure:"verbose"`
	LogLevel       string        `mapstructure:"log_level"`
}

// New returns a viper instance with the defaults set and the environment
// bound
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyAPIBaseURL, "http://localhost:5000/api")
	v.SetDefault(KeyRequestTimeout, 10*time.Second)
	v.SetDefault(KeyRateLimit, 0.0)
	v.SetDefault(KeyRateBurst, 1)
	v.SetDefault(KeySessionBackend, BackendFile)
	v.SetDefault(KeySessionDir, "")
	v.SetDefault(KeyRedisURL, "redis://localhost:6379")
	v.SetDefault(KeyRedisPrefix, "fbconsole")
	v.SetDefault(KeyListenAddr, "127.0.0.1:8080")
	v.SetDefault(KeyOutput, "text")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyLogLevel, "warn")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads .env files into the process environment. Missing files
// are skipped; variables already set are not overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load decodes and validates the settings held by v
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.APIBaseURL), "/")
	cfg.SessionBackend = strings.ToLower(strings.TrimSpace(cfg.SessionBackend))
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings are usable
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.APIBaseURL)
	}
	switch c.SessionBackend {
	case BackendFile, BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.SessionBackend)
	}
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit cannot be negative, got %v", c.RateLimit)
	}
	return nil
}

// Level returns the log level: debug when verbose, otherwise log_level
func (c Config) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// Logger builds the process logger. The web console logs JSON; the command
// line logs text.
func (c Config) Logger(w io.Writer, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
