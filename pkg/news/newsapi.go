package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sentinews/internal/model"
)

// tickerNameMap maps tickers to the company names NewsAPI searches
// actually match on.
var tickerNameMap = map[string]string{
	"IBM":  "IBM",
	"AAPL": "apple",
	"GOOG": "Google",
	"MSFT": "Microsoft",
	"TSLA": "Tesla",
	"AMZN": "Amazon",
	"META": "Meta Platforms",
	"NFLX": "Netflix",
	"NVDA": "NVIDIA",
	"AMD":  "Advanced Micro Devices",
}

type NewsAPIClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsAPIClient) Name() model.Provider {
	return model.ProviderNewsAPI
}

// Fetch issues one query per ticker. NewsAPI has no ticker association,
// so each result carries the ticker it was queried for. A failed ticker
// is logged and skipped; articles collected for earlier tickers survive.
func (c *NewsAPIClient) Fetch(ctx context.Context, tickers []string, start, end time.Time) ([]model.Article, error) {
	var articles []model.Article

	for _, ticker := range tickers {
		query := ticker
		if name, ok := tickerNameMap[ticker]; ok {
			query = name
		}

		params := url.Values{}
		params.Set("q", query)
		params.Set("from", start.UTC().Format("2006-01-02"))
		params.Set("to", end.UTC().Format("2006-01-02"))
		params.Set("language", "en")
		params.Set("sortBy", "relevancy")
		params.Set("pageSize", "100")
		params.Set("apiKey", c.apiKey)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			"https://newsapi.org/v2/everything?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("newsapi request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			slog.Warn("newsapi fetch failed for ticker", "ticker", ticker, "error", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			slog.Warn("newsapi bad status for ticker", "ticker", ticker, "status", resp.StatusCode)
			continue
		}

		var raw newsAPIResponse
		err = json.NewDecoder(resp.Body).Decode(&raw)
		resp.Body.Close()
		if err != nil {
			slog.Warn("newsapi decode failed for ticker", "ticker", ticker, "error", err)
			continue
		}

		for _, item := range raw.Articles {
			article, ok := normalizeNewsAPI(item, ticker)
			if !ok || !inWindow(article.Published, start, end) {
				continue
			}
			articles = append(articles, article)
		}
	}

	return articles, nil
}

func normalizeNewsAPI(item newsAPIArticle, ticker string) (model.Article, bool) {
	if strings.TrimSpace(item.Title) == "" {
		return model.Article{}, false
	}

	published, err := time.Parse(time.RFC3339, item.PublishedAt)
	if err != nil {
		return model.Article{}, false
	}

	content := item.Description
	if content == "" {
		content = item.Content
	}

	tickers := []string{}
	if ticker != "" {
		tickers = append(tickers, ticker)
	}

	return model.Article{
		SourceProvider: model.ProviderNewsAPI,
		Title:          item.Title,
		URL:            item.URL,
		Content:        content,
		SourceName:     item.Source.Name,
		Published:      published.UTC(),
		Tickers:        tickers,
		ItemType:       model.ItemTypeNews,
	}, true
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
	Content     string        `json:"content"`
}

type newsAPISource struct {
	Name string `json:"name"`
}
