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

const twitterMaxTickers = 10

type TwitterClient struct {
	bearerToken string
	httpClient  *http.Client
}

func NewTwitterClient(bearerToken string) *TwitterClient {
	return &TwitterClient{
		bearerToken: bearerToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *TwitterClient) Name() model.Provider {
	return model.ProviderTwitter
}

func (c *TwitterClient) Fetch(ctx context.Context, tickers []string, start, end time.Time) ([]model.Article, error) {
	tickers = truncateTickers(tickers, twitterMaxTickers)

	params := url.Values{}
	params.Set("query", "("+cashtagQuery(tickers)+") lang:en")
	params.Set("max_results", "100")
	params.Set("tweet.fields", "created_at,author_id")
	params.Set("expansions", "author_id")
	params.Set("user.fields", "username")
	params.Set("start_time", start.UTC().Format(time.RFC3339))
	params.Set("end_time", end.UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://api.twitter.com/2/tweets/search/recent?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("twitter request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twitter fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twitter status %d", resp.StatusCode)
	}

	var raw twitterResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("twitter decode: %w", err)
	}

	usernames := make(map[string]string, len(raw.Includes.Users))
	for _, u := range raw.Includes.Users {
		usernames[u.ID] = u.Username
	}

	articles := make([]model.Article, 0, len(raw.Data))
	for _, tweet := range raw.Data {
		article, ok := normalizeTweet(tweet, usernames[tweet.AuthorID], tickers)
		if !ok || !inWindow(article.Published, start, end) {
			continue
		}
		articles = append(articles, article)
	}

	return articles, nil
}

func normalizeTweet(tweet twitterTweet, username string, tickers []string) (model.Article, bool) {
	text := tweet.Text
	if strings.TrimSpace(text) == "" {
		return model.Article{}, false
	}

	published, err := time.Parse(time.RFC3339, tweet.CreatedAt)
	if err != nil {
		return model.Article{}, false
	}

	title := text
	if runes := []rune(text); len(runes) > 100 {
		title = string(runes[:100]) + "..."
	}

	return model.Article{
		SourceProvider: model.ProviderTwitter,
		Title:          title,
		URL:            "https://twitter.com/i/status/" + tweet.ID,
		Content:        text,
		SourceName:     username,
		Published:      published.UTC(),
		Tickers:        matchTickers(text, tickers),
		ItemType:       model.ItemTypeSocial,
	}, true
}

type twitterResponse struct {
	Data     []twitterTweet  `json:"data"`
	Includes twitterIncludes `json:"includes"`
}

type twitterTweet struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	AuthorID  string `json:"author_id"`
}

type twitterIncludes struct {
	Users []twitterUser `json:"users"`
}

type twitterUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
