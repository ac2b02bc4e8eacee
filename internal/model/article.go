package model

import "time"

type Provider string

const (
	ProviderAlphaVantage Provider = "alpha_vantage"
	ProviderNewsAPI      Provider = "newsapi"
	ProviderReddit       Provider = "reddit"
	ProviderTwitter      Provider = "twitter"
	ProviderFinnhub      Provider = "finnhub"
)

type ItemType string

const (
	ItemTypeNews   ItemType = "news"
	ItemTypeSocial ItemType = "social"
)

type Label string

const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

// Article is the canonical record every provider normalizes into.
// URL is the identity: the aggregator and store both dedup on it.
type Article struct {
	SourceProvider Provider
	Title          string
	URL            string
	Content        string
	SourceName     string
	Published      time.Time
	Tickers        []string
	SentimentScore float64
	SentimentLabel Label
	ItemType       ItemType
}

// SentimentSummary aggregates stored sentiment over a query window.
type SentimentSummary struct {
	Positive     int
	Neutral      int
	Negative     int
	Total        int
	AverageScore float64
}
