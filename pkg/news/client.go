package news

import (
	"context"
	"strings"
	"time"

	"sentinews/internal/model"
)

// Client fetches articles for a set of tickers inside a date window and
// returns them already normalized. Transport and parse failures surface
// as errors; the aggregator decides how to degrade.
type Client interface {
	Fetch(ctx context.Context, tickers []string, start, end time.Time) ([]model.Article, error)
	Name() model.Provider
}

// truncateTickers silently drops tickers past a provider's request limit.
func truncateTickers(tickers []string, max int) []string {
	if len(tickers) <= max {
		return tickers
	}
	return tickers[:max]
}

// cashtagQuery builds the "$AAPL OR $MSFT" search string the social
// providers use.
func cashtagQuery(tickers []string) string {
	parts := make([]string, 0, len(tickers))
	for _, t := range tickers {
		parts = append(parts, "$"+t)
	}
	return strings.Join(parts, " OR ")
}

// matchTickers returns the subset of tickers mentioned in text,
// case-insensitively. Crude: social posts carry no structured ticker
// association, so a substring match is all there is.
func matchTickers(text string, tickers []string) []string {
	lower := strings.ToLower(text)
	matched := make([]string, 0)
	for _, t := range tickers {
		if strings.Contains(lower, strings.ToLower(t)) {
			matched = append(matched, t)
		}
	}
	return matched
}

func inWindow(ts, start, end time.Time) bool {
	return !ts.Before(start) && !ts.After(end)
}
