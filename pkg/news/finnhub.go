package news

import (
	"context"
	"log/slog"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"sentinews/internal/model"
)

type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{client: client}
}

func (c *FinnhubClient) Name() model.Provider {
	return model.ProviderFinnhub
}

func (c *FinnhubClient) Fetch(ctx context.Context, tickers []string, start, end time.Time) ([]model.Article, error) {
	var articles []model.Article

	for _, ticker := range tickers {
		res, _, err := c.client.CompanyNews(ctx).
			Symbol(ticker).
			From(start.UTC().Format("2006-01-02")).
			To(end.UTC().Format("2006-01-02")).
			Execute()
		if err != nil {
			slog.Warn("finnhub fetch failed for ticker", "ticker", ticker, "error", err)
			continue
		}

		for _, item := range res {
			article, ok := normalizeFinnhub(item)
			if !ok || !inWindow(article.Published, start, end) {
				continue
			}
			articles = append(articles, article)
		}
	}

	return articles, nil
}

func normalizeFinnhub(item finnhub.CompanyNews) (model.Article, bool) {
	a := model.Article{
		SourceProvider: model.ProviderFinnhub,
		Tickers:        []string{},
		ItemType:       model.ItemTypeNews,
	}

	if item.Headline != nil {
		a.Title = *item.Headline
	}
	if strings.TrimSpace(a.Title) == "" {
		return model.Article{}, false
	}

	if item.Datetime == nil {
		return model.Article{}, false
	}
	a.Published = time.Unix(*item.Datetime, 0).UTC()

	if item.Url != nil {
		a.URL = *item.Url
	}
	if item.Summary != nil {
		a.Content = *item.Summary
	}
	if item.Source != nil {
		a.SourceName = *item.Source
	}
	if item.Related != nil && *item.Related != "" {
		a.Tickers = strings.Split(*item.Related, ",")
	}

	return a, true
}
