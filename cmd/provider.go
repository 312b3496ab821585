package cmd

import (
	"fmt"

	"github.com/etnz/folio"
	"github.com/etnz/folio/eodhd"
	"github.com/etnz/folio/yahoo"
	"github.com/rs/zerolog/log"
)

// newProvider returns the market data provider selected by config, and a short description of it.
func newProvider(config *Config) (folio.Provider, string, error) {
	switch config.Provider {
	case providerMemory:
		m, err := folio.DecodeMarketData(config.Market.Path)
		if err != nil {
			return nil, "", err
		}
		log.Debug().Str("path", config.Market.Path).Int("tickers", len(m.Tickers())).Msg("market data loaded")
		return m, fmt.Sprintf("market data in %s", config.Market.Path), nil

	case providerEODHD:
		return newEODHDClient(config), "EODHD", nil

	case providerYahoo:
		return yahoo.NewClient(yahoo.WithBaseURL(config.Yahoo.BaseURL), yahoo.WithCurrency(config.Currency)), "Yahoo Finance", nil

	default:
		return nil, "", fmt.Errorf("unknown provider %q", config.Provider)
	}
}

// newEODHDClient returns an EODHD client, on the public demo key when none is configured.
func newEODHDClient(config *Config) *eodhd.Client {
	key := config.EODHD.APIKey
	if key == "" {
		log.Warn().Msg("EODHD API key is not set (-eodhd-api-key flag or EODHD_API_KEY), using the demo key")
		key = eodhd.DemoKey
	}
	opts := []eodhd.ClientOption{eodhd.WithBaseURL(config.EODHD.BaseURL)}
	if config.EODHD.RateLimit > 0 {
		opts = append(opts, eodhd.WithRateLimit(config.EODHD.RateLimit))
	}
	return eodhd.NewClient(key, opts...)
}

// newValuer returns a Valuer on the configured provider.
func newValuer(config *Config) (*folio.Valuer, string, error) {
	provider, name, err := newProvider(config)
	if err != nil {
		return nil, "", err
	}
	return &folio.Valuer{
		Provider: provider,
		Timeout:  config.GetTimeout(),
		Currency: config.Currency,
	}, name, nil
}
