package handler

type ArticleResponse struct {
	Provider       string   `json:"provider"`
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Content        string   `json:"content"`
	SourceName     string   `json:"source_name"`
	Published      string   `json:"published"`
	Tickers        []string `json:"tickers"`
	SentimentScore float64  `json:"sentiment_score"`
	SentimentLabel string   `json:"sentiment_label"`
	ItemType       string   `json:"item_type"`
}

type FeedResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Count    int               `json:"count"`
	Limit    int               `json:"limit"`
}

type SentimentSummaryResponse struct {
	Positive     int     `json:"positive"`
	Neutral      int     `json:"neutral"`
	Negative     int     `json:"negative"`
	Total        int     `json:"total"`
	AverageScore float64 `json:"average_score"`
}

type SectorsResponse struct {
	Sectors map[string][]string `json:"sectors"`
	Sources []string            `json:"sources"`
}
