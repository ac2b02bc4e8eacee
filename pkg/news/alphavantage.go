package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sentinews/internal/model"
)

// AlphaVantage accepts at most 50 tickers per NEWS_SENTIMENT request.
const alphaVantageMaxTickers = 50

const alphaVantageTimeLayout = "20060102T150405"

type AlphaVantageClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *AlphaVantageClient) Name() model.Provider {
	return model.ProviderAlphaVantage
}

func (c *AlphaVantageClient) Fetch(ctx context.Context, tickers []string, start, end time.Time) ([]model.Article, error) {
	params := url.Values{}
	params.Set("function", "NEWS_SENTIMENT")
	params.Set("tickers", strings.Join(truncateTickers(tickers, alphaVantageMaxTickers), ","))
	params.Set("time_from", start.UTC().Format("20060102T1504"))
	params.Set("time_to", end.UTC().Format("20060102T1504"))
	params.Set("limit", "200")
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://www.alphavantage.co/query?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("alphavantage request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage status %d", resp.StatusCode)
	}

	var raw avResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}

	articles := make([]model.Article, 0, len(raw.Feed))
	for _, item := range raw.Feed {
		article, ok := normalizeAlphaVantage(item)
		if !ok || !inWindow(article.Published, start, end) {
			continue
		}
		articles = append(articles, article)
	}

	return articles, nil
}

// normalizeAlphaVantage maps a NEWS_SENTIMENT feed item onto the
// canonical record. Items with blank titles or unparseable timestamps
// are discarded.
func normalizeAlphaVantage(item avFeedItem) (model.Article, bool) {
	if strings.TrimSpace(item.Title) == "" {
		return model.Article{}, false
	}

	published, err := time.Parse(alphaVantageTimeLayout, item.TimePublished)
	if err != nil {
		return model.Article{}, false
	}

	tickers := make([]string, 0, len(item.TickerSentiment))
	for _, ts := range item.TickerSentiment {
		if ts.Ticker != "" {
			tickers = append(tickers, ts.Ticker)
		}
	}

	return model.Article{
		SourceProvider: model.ProviderAlphaVantage,
		Title:          item.Title,
		URL:            item.URL,
		Content:        item.Summary,
		SourceName:     item.Source,
		Published:      published.UTC(),
		Tickers:        tickers,
		ItemType:       model.ItemTypeNews,
	}, true
}

type avResponse struct {
	Feed []avFeedItem `json:"feed"`
}

type avFeedItem struct {
	Title           string              `json:"title"`
	Summary         string              `json:"summary"`
	URL             string              `json:"url"`
	Source          string              `json:"source"`
	TimePublished   string              `json:"time_published"`
	TickerSentiment []avTickerSentiment `json:"ticker_sentiment"`
}

type avTickerSentiment struct {
	Ticker string `json:"ticker"`
}
