package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/assert/v2"

	"sentinews/internal/model"
)

func newMockRepo(t *testing.T) (*ArticleRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewArticleRepository(db), mock
}

func TestUpsertReplaceOnConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	published := time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC)
	articles := []model.Article{
		{
			SourceProvider: model.ProviderAlphaVantage,
			Title:          "Tesla surges",
			URL:            "http://x/1",
			SourceName:     "Reuters",
			Published:      published,
			Tickers:        []string{"TSLA"},
			SentimentScore: 0.1,
			SentimentLabel: model.LabelPositive,
			ItemType:       model.ItemTypeNews,
		},
		{
			SourceProvider: model.ProviderNewsAPI,
			Title:          "Tesla surges",
			URL:            "http://x/1",
			Content:        "full article text",
			SourceName:     "Reuters",
			Published:      published,
			Tickers:        []string{"TSLA"},
			SentimentScore: 0.7,
			SentimentLabel: model.LabelPositive,
			ItemType:       model.ItemTypeNews,
		},
	}

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO article(?s:.*)ON CONFLICT \(url\) DO UPDATE`)
	prep.ExpectExec().
		WithArgs("alpha_vantage", "Tesla surges", "http://x/1", "", "Reuters",
			published, sqlmock.AnyArg(), 0.1, "positive", "news").
		WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().
		WithArgs("newsapi", "Tesla surges", "http://x/1", "full article text", "Reuters",
			published, sqlmock.AnyArg(), 0.7, "positive", "news").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	count, err := repo.Upsert(articles)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, nil, mock.ExpectationsWereMet())
}

func TestUpsertRollsBackOnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO article`)
	prep.ExpectExec().WillReturnError(sqlmock.ErrCancelled)
	mock.ExpectRollback()

	_, err := repo.Upsert([]model.Article{
		{Title: "x", URL: "http://x/1", Published: time.Now(), Tickers: []string{}},
	})

	assert.NotEqual(t, nil, err)
	assert.Equal(t, nil, mock.ExpectationsWereMet())
}

func TestUpsertEmptyBatchSkipsDB(t *testing.T) {
	repo, mock := newMockRepo(t)

	count, err := repo.Upsert(nil)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, nil, mock.ExpectationsWereMet())
}

func TestQueryReturnsStoredScore(t *testing.T) {
	repo, mock := newMockRepo(t)

	published := time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"source_provider", "title", "url", "content", "source_name",
		"published", "tickers", "sentiment_score", "sentiment_label", "item_type",
	}).AddRow("newsapi", "Tesla surges", "http://x/1", "full article text", "Reuters",
		published, "{TSLA}", 0.7, "positive", "news")

	mock.ExpectQuery(`SELECT(?s:.*)FROM article(?s:.*)ORDER BY published DESC`).
		WillReturnRows(rows)

	articles, err := repo.Query(nil, nil, nil, 10)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, 0.7, articles[0].SentimentScore)
	assert.Equal(t, model.LabelPositive, articles[0].SentimentLabel)
	assert.Equal(t, []string{"TSLA"}, articles[0].Tickers)
}

func TestPurgeUsesRetentionCutoff(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	mock.ExpectExec(`DELETE FROM article WHERE published < \$1`).
		WithArgs(now.AddDate(0, 0, -30)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	removed, err := repo.Purge(30)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, nil, mock.ExpectationsWereMet())
}

func TestPurgeCutoffBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cutoff := purgeCutoff(now, 30)

	removed := now.AddDate(0, 0, -31)
	retained := now.AddDate(0, 0, -29)

	assert.Equal(t, true, removed.Before(cutoff))
	assert.Equal(t, false, retained.Before(cutoff))
	assert.Equal(t, time.UTC, cutoff.Location())
}

func TestBuildFiltersEmpty(t *testing.T) {
	where, args := buildFilters(nil, nil, nil)

	assert.Equal(t, "", where)
	assert.Equal(t, 0, len(args))
}

func TestBuildFiltersAll(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	where, args := buildFilters([]string{"AAPL"}, &start, &end)

	assert.Equal(t, " WHERE tickers && $1::text[] AND published >= $2 AND published <= $3", where)
	assert.Equal(t, 3, len(args))
}

func TestBuildFiltersDatesOnly(t *testing.T) {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	where, args := buildFilters(nil, &start, nil)

	assert.Equal(t, " WHERE published >= $1", where)
	assert.Equal(t, 1, len(args))
}
