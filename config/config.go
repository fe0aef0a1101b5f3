package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported values for QUOTES_SOURCE.
const (
	SourceYahoo    = "yahoo"
	SourcePostgres = "postgres"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, quote retrieval, analysis defaults and storage connections.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	QUOTES_SOURCE=yahoo
//	QUOTES_TICKERS=MSFT,GOOG,AAPL,UBER,IBM
//	SMA_WINDOW=30
//	POSTGRES_HOST=localhost
//	REDIS_ADDR=localhost:6379
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Quotes   QuotesConfig   // Quote retrieval settings
	Analysis AnalysisConfig // Defaults for the price analysis
	Postgres PostgresConfig // PostgreSQL connection settings
	Redis    RedisConfig    // Redis cache settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port           string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RateLimit      int           // Requests allowed per client IP per minute
	RequestTimeout time.Duration // Per-request deadline applied by the router
}

// QuotesConfig selects and tunes the quote source.
//
// Fields:
//   - Source: "yahoo" (live HTTP) or "postgres" (imported quotes).
//   - Tickers: default instrument list for report mode and ingestion.
//   - YahooBaseURL: chart API host, overridable for tests and mirrors.
//   - YahooTimeout: per-request HTTP timeout.
//   - Proxy: optional HTTPS proxy URL for outbound requests.
//   - Parallel: max tickers fetched concurrently (0 = auto).
type QuotesConfig struct {
	Source       string
	Tickers      []string
	YahooBaseURL string
	YahooTimeout time.Duration
	Proxy        string
	Parallel     int
}

// AnalysisConfig holds defaults applied when a request does not override them.
type AnalysisConfig struct {
	SMAWindow    int // trailing SMA window, in observations
	LookbackDays int // trading days covered when no start date is given
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// RedisConfig defines the optional read-through cache. An empty Addr
// disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	viper.SetDefault("REQUEST_TIMEOUT", "10s")

	viper.SetDefault("QUOTES_SOURCE", SourceYahoo)
	viper.SetDefault("QUOTES_TICKERS", "MSFT,GOOG,AAPL,UBER,IBM")
	viper.SetDefault("YAHOO_BASE_URL", "https://query1.finance.yahoo.com")
	viper.SetDefault("YAHOO_TIMEOUT", "30s")
	viper.SetDefault("HTTPS_PROXY", "")
	viper.SetDefault("REPORT_PARALLEL", 0)

	viper.SetDefault("SMA_WINDOW", 30)
	viper.SetDefault("DEFAULT_LOOKBACK_DAYS", 90)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "quotepulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL", "15m")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RateLimit:      viper.GetInt("RATE_LIMIT_PER_MINUTE"),
			RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
		},
		Quotes: QuotesConfig{
			Source:       strings.ToLower(strings.TrimSpace(viper.GetString("QUOTES_SOURCE"))),
			Tickers:      ParseTickers(viper.GetString("QUOTES_TICKERS")),
			YahooBaseURL: strings.TrimRight(viper.GetString("YAHOO_BASE_URL"), "/"),
			YahooTimeout: viper.GetDuration("YAHOO_TIMEOUT"),
			Proxy:        viper.GetString("HTTPS_PROXY"),
			Parallel:     viper.GetInt("REPORT_PARALLEL"),
		},
		Analysis: AnalysisConfig{
			SMAWindow:    viper.GetInt("SMA_WINDOW"),
			LookbackDays: viper.GetInt("DEFAULT_LOOKBACK_DAYS"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			TTL:      viper.GetDuration("CACHE_TTL"),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// ParseTickers splits a comma separated list into upper-cased, de-duplicated
// symbols, preserving first-seen order.
func ParseTickers(raw string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(raw, ",") {
		t := strings.ToUpper(strings.TrimSpace(part))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// problems lists every missing or invalid setting by its variable name.
func (c Config) problems() []string {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.Server.RateLimit <= 0 {
		missing = append(missing, "RATE_LIMIT_PER_MINUTE")
	}
	if c.Server.RequestTimeout <= 0 {
		missing = append(missing, "REQUEST_TIMEOUT")
	}
	switch c.Quotes.Source {
	case SourceYahoo:
		if c.Quotes.YahooBaseURL == "" {
			missing = append(missing, "YAHOO_BASE_URL")
		}
	case SourcePostgres:
		if c.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if c.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if c.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	default:
		missing = append(missing, "QUOTES_SOURCE")
	}
	if c.Quotes.Proxy != "" {
		if u, err := url.Parse(c.Quotes.Proxy); err != nil || u.Scheme == "" || u.Host == "" {
			missing = append(missing, "HTTPS_PROXY")
		}
	}
	if len(c.Quotes.Tickers) == 0 {
		missing = append(missing, "QUOTES_TICKERS")
	}
	if c.Analysis.SMAWindow <= 0 {
		missing = append(missing, "SMA_WINDOW")
	}
	if c.Analysis.LookbackDays <= 0 {
		missing = append(missing, "DEFAULT_LOOKBACK_DAYS")
	}
	return missing
}

// validateConfig terminates the application when AppConfig is incomplete.
func validateConfig() {
	if problems := AppConfig.problems(); len(problems) > 0 {
		log.Fatalf("❌ Invalid configuration: %v\n", problems)
	}
}
