package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"sentinews/internal/model"
)

type fakeStore struct {
	articles []model.Article
	summary  *model.SentimentSummary
	total    int
	err      error

	gotTickers []string
	gotStart   *time.Time
	gotEnd     *time.Time
	gotLimit   int
}

func (f *fakeStore) Query(tickers []string, start, end *time.Time, limit int) ([]model.Article, error) {
	f.gotTickers = tickers
	f.gotStart = start
	f.gotEnd = end
	f.gotLimit = limit
	return f.articles, f.err
}

func (f *fakeStore) SentimentSummary(tickers []string, start, end *time.Time) (*model.SentimentSummary, error) {
	f.gotTickers = tickers
	return f.summary, f.err
}

func (f *fakeStore) Count() (int, error) {
	return f.total, f.err
}

func newTestRouter(store ArticleStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewArticleHandler(store, nil, map[string][]string{"Technology": {"AAPL"}}, []string{"Reuters"})
	r.GET("/articles", h.GetArticles)
	r.GET("/sentiment/summary", h.GetSentimentSummary)
	r.GET("/sectors", h.GetSectors)
	r.GET("/health", h.GetHealth)
	return r
}

func TestGetArticles(t *testing.T) {
	store := &fakeStore{
		articles: []model.Article{
			{
				SourceProvider: model.ProviderAlphaVantage,
				Title:          "Fed Holds Rates Steady",
				URL:            "http://x/1",
				Published:      time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC),
				Tickers:        []string{"SPY"},
				SentimentScore: 0.4,
				SentimentLabel: model.LabelPositive,
				ItemType:       model.ItemTypeNews,
			},
		},
	}

	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles?tickers=spy,%20aapl&limit=10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res FeedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "Fed Holds Rates Steady", res.Articles[0].Title)
	assert.Equal(t, "positive", res.Articles[0].SentimentLabel)
	assert.Equal(t, []string{"SPY"}, res.Articles[0].Tickers)

	assert.Equal(t, []string{"SPY", "AAPL"}, store.gotTickers)
	assert.Equal(t, 10, store.gotLimit)
}

func TestGetArticlesDateFilters(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles?start=2026-02-01&end=2026-02-26T12:00:00Z", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *store.gotStart)
	assert.Equal(t, time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC), *store.gotEnd)
}

func TestGetArticlesBareDateEndCoversWholeDay(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles?end=2026-02-26", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	wantEnd := time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC).Add(24*time.Hour - time.Nanosecond)
	assert.Equal(t, wantEnd, *store.gotEnd)
}

func TestGetArticlesInvalidDate(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles?start=tomorrow", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetArticlesDBError(t *testing.T) {
	r := newTestRouter(&fakeStore{err: errors.New("DB down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetArticlesDefaultLimit(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles", nil)
	r.ServeHTTP(w, req)

	var res FeedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 100, res.Limit)
}

func TestGetArticlesLimitClamped(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/articles?limit=99999", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 1000, store.gotLimit)
}

func TestGetSentimentSummary(t *testing.T) {
	store := &fakeStore{
		summary: &model.SentimentSummary{
			Positive:     3,
			Neutral:      5,
			Negative:     2,
			Total:        10,
			AverageScore: 0.12,
		},
	}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/sentiment/summary?tickers=AAPL", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res SentimentSummaryResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 3, res.Positive)
	assert.Equal(t, 10, res.Total)
	assert.Equal(t, 0.12, res.AverageScore)
}

func TestGetSectors(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/sectors", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res SectorsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, []string{"AAPL"}, res.Sectors["Technology"])
	assert.Equal(t, []string{"Reuters"}, res.Sources)
}

func TestGetHealthHealthy(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "healthy", res["status"])
}

func TestGetHealthUnhealthy(t *testing.T) {
	r := newTestRouter(&fakeStore{err: errors.New("DB down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestParseTickers(t *testing.T) {
	assert.Equal(t, []string{"AAPL", "MSFT"}, parseTickers("aapl, msft"))
	assert.Equal(t, 0, len(parseTickers("")))
	assert.Equal(t, []string{"AAPL"}, parseTickers("AAPL,,"))
}
