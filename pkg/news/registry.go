package news

import (
	"sentinews/internal/config"
	"sentinews/internal/model"
)

// Constructor builds a provider client from configuration, or reports
// that the provider is not configured (missing credentials).
type Constructor func(cfg *config.Config) (Client, bool)

// providerOrder fixes the fan-out order; last-write-wins dedup in the
// aggregator depends on it being stable.
var providerOrder = []model.Provider{
	model.ProviderAlphaVantage,
	model.ProviderNewsAPI,
	model.ProviderReddit,
	model.ProviderTwitter,
	model.ProviderFinnhub,
}

var constructors = map[model.Provider]Constructor{
	model.ProviderAlphaVantage: func(cfg *config.Config) (Client, bool) {
		if cfg.AlphaVantageKey == "" {
			return nil, false
		}
		return NewAlphaVantageClient(cfg.AlphaVantageKey), true
	},
	model.ProviderNewsAPI: func(cfg *config.Config) (Client, bool) {
		if cfg.NewsAPIKey == "" {
			return nil, false
		}
		return NewNewsAPIClient(cfg.NewsAPIKey), true
	},
	model.ProviderReddit: func(cfg *config.Config) (Client, bool) {
		if cfg.RedditUserAgent == "" {
			return nil, false
		}
		return NewRedditClient(cfg.RedditUserAgent), true
	},
	model.ProviderTwitter: func(cfg *config.Config) (Client, bool) {
		if cfg.TwitterBearerToken == "" {
			return nil, false
		}
		return NewTwitterClient(cfg.TwitterBearerToken), true
	},
	model.ProviderFinnhub: func(cfg *config.Config) (Client, bool) {
		if cfg.FinnhubKey == "" {
			return nil, false
		}
		return NewFinnhubClient(cfg.FinnhubKey), true
	},
}

// BuildClients returns the configured provider clients in registry order.
func BuildClients(cfg *config.Config) []Client {
	var clients []Client
	for _, id := range providerOrder {
		construct, ok := constructors[id]
		if !ok {
			continue
		}
		if client, configured := construct(cfg); configured {
			clients = append(clients, client)
		}
	}
	return clients
}
