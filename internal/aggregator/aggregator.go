package aggregator

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sentinews/internal/model"
	"sentinews/pkg/news"
)

// Aggregate fans out to every client, normalizes failures to empty
// results, and merges everything into one URL-deduplicated, window-filtered
// slice. A provider failure never aborts the cycle; zero articles overall
// is not an error.
//
// Results land in one slot per client before concatenation, so the merge
// order is the client configuration order regardless of fetch timing and
// last-write-wins dedup stays deterministic.
func Aggregate(ctx context.Context, clients []news.Client, tickers []string, start, end time.Time) []model.Article {
	results := make([][]model.Article, len(clients))

	var g errgroup.Group
	for i, client := range clients {
		i, client := i, client
		g.Go(func() error {
			articles, err := client.Fetch(ctx, tickers, start, end)
			if err != nil {
				slog.Warn("provider fetch failed, continuing without it",
					"source", client.Name(), "error", err)
				return nil
			}
			results[i] = articles
			return nil
		})
	}
	g.Wait()

	var merged []model.Article
	for _, articles := range results {
		merged = append(merged, articles...)
	}

	return filter(dedupByURL(merged), start, end)
}

// dedupByURL keeps the last record for each URL while preserving
// first-seen position, so re-runs over the same inputs are stable.
func dedupByURL(articles []model.Article) []model.Article {
	index := make(map[string]int, len(articles))
	deduped := make([]model.Article, 0, len(articles))

	for _, a := range articles {
		if pos, seen := index[a.URL]; seen {
			deduped[pos] = a
			continue
		}
		index[a.URL] = len(deduped)
		deduped = append(deduped, a)
	}

	return deduped
}

// filter re-checks the invariants normalizers are supposed to enforce:
// non-empty title and URL, published inside [start, end], tickers never
// nil. Upstream timestamp parsing can be provider-buggy, so this does
// not trust it.
func filter(articles []model.Article, start, end time.Time) []model.Article {
	kept := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if strings.TrimSpace(a.Title) == "" || a.URL == "" {
			continue
		}
		if a.Published.Before(start) || a.Published.After(end) {
			continue
		}
		if a.Tickers == nil {
			a.Tickers = []string{}
		}
		kept = append(kept, a)
	}
	return kept
}

// EnrichTickers fills empty ticker sets by substring-matching the
// requested tickers against title and content. Optional pass; crude by
// the same measure the social providers are.
func EnrichTickers(articles []model.Article, tickers []string) []model.Article {
	for i, a := range articles {
		if len(a.Tickers) > 0 {
			continue
		}
		text := strings.ToLower(a.Title + " " + a.Content)
		matched := []string{}
		for _, t := range tickers {
			if strings.Contains(text, strings.ToLower(t)) {
				matched = append(matched, t)
			}
		}
		articles[i].Tickers = matched
	}
	return articles
}
