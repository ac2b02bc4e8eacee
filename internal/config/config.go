package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultRetentionDays   = 30
	defaultFetchWindowDays = 7
	defaultCacheTTLSeconds = 3600
)

type Config struct {
	DatabaseURL string
	RedisURL    string
	FrontendURL string

	AlphaVantageKey    string
	NewsAPIKey         string
	RedditUserAgent    string
	TwitterBearerToken string
	FinnhubKey         string

	SentimentEngine string
	OpenAIKey       string
	AnthropicKey    string

	RetentionDays   int
	FetchWindowDays int
	CacheTTL        time.Duration
	EnrichTickers   bool

	// Sectors maps a sector name to its ticker symbols. Sources is the
	// outlet allow-list shown to the dashboard.
	Sectors map[string][]string
	Sources []string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		FrontendURL: os.Getenv("FRONTEND_URL"),

		AlphaVantageKey:    os.Getenv("ALPHA_VANTAGE_API_KEY"),
		NewsAPIKey:         os.Getenv("NEWSAPI_API_KEY"),
		RedditUserAgent:    os.Getenv("REDDIT_USER_AGENT"),
		TwitterBearerToken: os.Getenv("TWITTER_BEARER_TOKEN"),
		FinnhubKey:         os.Getenv("FINNHUB_API_KEY"),

		SentimentEngine: getEnvDefault("SENTIMENT_ENGINE", "vader"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:    os.Getenv("ANTHROPIC_API_KEY"),

		RetentionDays:   getEnvInt("DATA_STORAGE_DAYS", defaultRetentionDays),
		FetchWindowDays: getEnvInt("FETCH_WINDOW_DAYS", defaultFetchWindowDays),
		CacheTTL:        time.Duration(getEnvInt("CACHE_TTL_SECONDS", defaultCacheTTLSeconds)) * time.Second,
		EnrichTickers:   getEnvBool("ENRICH_TICKERS"),

		Sectors: defaultSectors(),
		Sources: defaultSources(),
	}

	if path := os.Getenv("SECTORS_FILE"); path != "" {
		if err := cfg.loadSectorsFile(path); err != nil {
			return nil, fmt.Errorf("loading sectors file: %w", err)
		}
	}

	return cfg, nil
}

type sectorsFile struct {
	Sectors map[string][]string `yaml:"sectors"`
	Sources []string            `yaml:"sources"`
}

func (c *Config) loadSectorsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var parsed sectorsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return err
	}

	if len(parsed.Sectors) > 0 {
		c.Sectors = parsed.Sectors
	}
	if len(parsed.Sources) > 0 {
		c.Sources = parsed.Sources
	}
	return nil
}

// DefaultTickers returns the sorted union of all sector tickers.
func (c *Config) DefaultTickers() []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, symbols := range c.Sectors {
		for _, s := range symbols {
			if !seen[s] {
				seen[s] = true
				tickers = append(tickers, s)
			}
		}
	}
	sort.Strings(tickers)
	return tickers
}

func getEnvDefault(name, defaultValue string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return defaultValue
}

func getEnvBool(name string) bool {
	v := os.Getenv(name)
	return v == "1" || v == "true"
}

func getEnvInt(name string, defaultValue int) int {
	v := os.Getenv(name)
	if v == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 1 {
		return defaultValue
	}
	return parsed
}

func defaultSectors() map[string][]string {
	return map[string][]string{
		"Technology": {"AAPL", "MSFT", "GOOGL", "AMZN", "META", "NVDA", "TSLA",
			"ADBE", "INTC", "CSCO", "AMD", "CRM", "ORCL", "IBM", "QCOM", "TXN", "AVGO"},
		"Finance":        {"JPM", "BAC", "GS", "V", "MA", "PYPL"},
		"Healthcare":     {"PFE", "JNJ", "MRK", "UNH", "ABBV", "MDT", "ABT", "LLY", "BMY", "AMGN"},
		"Energy":         {"XOM", "CVX", "SHEL", "BP", "COP"},
		"Retail":         {"WMT", "TGT", "HD", "COST", "LOW", "SBUX", "MCD", "DPZ", "YUM"},
		"Industrial":     {"HON", "CAT", "BA", "MMM", "GE"},
		"Telecom":        {"VZ", "T", "TMUS", "CMCSA"},
		"Consumer Goods": {"PEP", "KO", "PG", "CL", "NKE"},
		"Entertainment":  {"NFLX", "DIS"},
	}
}

func defaultSources() []string {
	return []string{
		"Bloomberg",
		"Reuters",
		"Wall Street Journal",
		"Financial Times",
		"CNBC",
		"MarketWatch",
		"Seeking Alpha",
		"Investor's Business Daily",
		"Barron's",
		"The Economist",
		"Business Insider",
		"Yahoo Finance",
		"Motley Fool",
		"Zacks",
		"Morningstar",
		"Benzinga",
		"MarketBeat",
		"TipRanks",
	}
}
