package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"sentinews/internal/model"
)

// Cashtag queries past this many tickers get rejected by Reddit search.
const redditMaxTickers = 10

var redditSubreddits = []string{"stocks", "investing", "wallstreetbets", "finance"}

type RedditClient struct {
	userAgent  string
	httpClient *http.Client
}

func NewRedditClient(userAgent string) *RedditClient {
	return &RedditClient{
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *RedditClient) Name() model.Provider {
	return model.ProviderReddit
}

func (c *RedditClient) Fetch(ctx context.Context, tickers []string, start, end time.Time) ([]model.Article, error) {
	tickers = truncateTickers(tickers, redditMaxTickers)
	query := cashtagQuery(tickers)

	var articles []model.Article
	for _, subreddit := range redditSubreddits {
		params := url.Values{}
		params.Set("q", query)
		params.Set("sort", "new")
		params.Set("t", "year")
		params.Set("limit", "100")
		params.Set("restrict_sr", "1")

		endpoint := fmt.Sprintf("https://www.reddit.com/r/%s/search.json?%s", subreddit, params.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("reddit request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("reddit fetch r/%s: %w", subreddit, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reddit read r/%s: %w", subreddit, err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("reddit status %d for r/%s", resp.StatusCode, subreddit)
		}

		for _, article := range parseRedditListing(body, tickers) {
			if inWindow(article.Published, start, end) {
				articles = append(articles, article)
			}
		}
	}

	return articles, nil
}

// parseRedditListing walks the nested listing JSON (data.children[].data)
// and normalizes each submission.
func parseRedditListing(body []byte, tickers []string) []model.Article {
	var articles []model.Article

	gjson.GetBytes(body, "data.children").ForEach(func(_, child gjson.Result) bool {
		post := child.Get("data")

		title := strings.TrimSpace(post.Get("title").String())
		if title == "" {
			return true
		}

		createdUTC := post.Get("created_utc")
		if !createdUTC.Exists() {
			return true
		}

		articles = append(articles, model.Article{
			SourceProvider: model.ProviderReddit,
			Title:          post.Get("title").String(),
			URL:            "https://reddit.com" + post.Get("permalink").String(),
			Content:        post.Get("selftext").String(),
			SourceName:     "r/" + post.Get("subreddit").String(),
			Published:      time.Unix(int64(createdUTC.Float()), 0).UTC(),
			Tickers:        matchTickers(post.Get("title").String(), tickers),
			ItemType:       model.ItemTypeSocial,
		})
		return true
	})

	return articles
}
