package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/folio"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Provider names.
const (
	providerMemory = "memory"
	providerEODHD  = "eodhd"
	providerYahoo  = "yahoo"
)

var providers = []string{providerMemory, providerEODHD, providerYahoo}

// Config holds all the settings of pnl.
type Config struct {
	Provider    string        `toml:"provider"`
	Currency    string        `toml:"currency"`
	Timeout     string        `toml:"timeout"` // per provider query, "0" disables it
	Concurrency int           `toml:"concurrency"`
	EODHD       EODHDConfig   `toml:"eodhd"`
	Yahoo       YahooConfig   `toml:"yahoo"`
	Market      MarketConfig  `toml:"market"`
	Logging     LoggingConfig `toml:"logging"`
}

// EODHDConfig holds the EODHD API client configuration.
type EODHDConfig struct {
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
}

// YahooConfig holds the Yahoo Finance client configuration.
type YahooConfig struct {
	BaseURL string `toml:"base_url"`
}

// MarketConfig locates the market data folder used by the memory provider.
type MarketConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with the default settings.
func NewDefaultConfig() *Config {
	return &Config{
		Provider:    providerYahoo,
		Currency:    folio.DefaultCurrency,
		Timeout:     "30s",
		Concurrency: 1,
		EODHD: EODHDConfig{
			BaseURL:   "https://eodhd.com/api",
			RateLimit: 10,
		},
		Yahoo: YahooConfig{
			BaseURL: "https://query1.finance.yahoo.com",
		},
		Market: MarketConfig{
			Path: "market",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// GetTimeout parses and returns the per query timeout.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(providers, c.Provider) {
		errs = append(errs, fmt.Errorf("unknown provider %q, want one of %s", c.Provider, strings.Join(providers, ", ")))
	}
	if d, err := time.ParseDuration(c.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err))
	} else if d < 0 {
		errs = append(errs, fmt.Errorf("invalid timeout %q: must not be negative", c.Timeout))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("invalid concurrency %d: must be at least 1", c.Concurrency))
	}
	if len(c.Currency) != 3 {
		errs = append(errs, fmt.Errorf("invalid currency %q: want an ISO 4217 code", c.Currency))
	}
	return errors.Join(errs...)
}

// LoadConfig loads configuration from files with environment overrides.
// Missing files are skipped, later files override earlier ones.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("PNL_PROVIDER"); v != "" {
		config.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("PNL_CURRENCY"); v != "" {
		config.Currency = strings.ToUpper(v)
	}
	if v := os.Getenv("PNL_TIMEOUT"); v != "" {
		config.Timeout = v
	}
	if v := os.Getenv("PNL_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Concurrency = n
		}
	}
	if v := os.Getenv("PNL_MARKET"); v != "" {
		config.Market.Path = v
	}
	if v := os.Getenv("PNL_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("EODHD_API_KEY"); v != "" {
		config.EODHD.APIKey = v
	}
}

// applyFlagOverrides applies the global flags explicitly set on the command line.
func applyFlagOverrides(config *Config, fs *flag.FlagSet) (err error) {
	fs.Visit(func(f *flag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "provider":
			config.Provider = strings.ToLower(v)
		case "currency":
			config.Currency = strings.ToUpper(v)
		case "timeout":
			config.Timeout = v
		case "concurrency":
			n, cerr := strconv.Atoi(v)
			if cerr != nil {
				err = fmt.Errorf("invalid -concurrency %q: %w", v, cerr)
				return
			}
			config.Concurrency = n
		case "market":
			config.Market.Path = v
		case "eodhd-api-key":
			config.EODHD.APIKey = v
		case "log-level":
			config.Logging.Level = v
		}
	})
	return err
}

// loadConfig resolves the configuration of the current run: defaults, then the config file,
// then the environment (.env included), then the global flags.
func loadConfig() (*Config, error) {
	_ = godotenv.Load()

	config, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if err := applyFlagOverrides(config, flag.CommandLine); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	setupLogging(config.Logging.Level)
	return config, nil
}
