package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"sentinews/internal/model"
)

type ArticleRepository struct {
	db *sql.DB

	// now is swappable so retention boundaries are testable.
	now func() time.Time
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db, now: time.Now}
}

// Upsert writes articles keyed by URL with replace semantics: the
// aggregator already resolved same-cycle duplicates, and a re-ingested
// URL usually carries updated content and sentiment. The whole batch
// runs in one transaction, so callers see all rows written or an error.
func (r *ArticleRepository) Upsert(articles []model.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO article(source_provider, title, url, content, source_name, published, tickers, sentiment_score, sentiment_label, item_type)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (url) DO UPDATE SET
			source_provider = EXCLUDED.source_provider,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			source_name = EXCLUDED.source_name,
			published = EXCLUDED.published,
			tickers = EXCLUDED.tickers,
			sentiment_score = EXCLUDED.sentiment_score,
			sentiment_label = EXCLUDED.sentiment_label,
			item_type = EXCLUDED.item_type
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for _, a := range articles {
		_, err := stmt.Exec(
			string(a.SourceProvider), a.Title, a.URL, a.Content, a.SourceName,
			a.Published, pq.Array(a.Tickers), a.SentimentScore,
			string(a.SentimentLabel), string(a.ItemType),
		)
		if err != nil {
			return 0, fmt.Errorf("upserting %s: %w", a.URL, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return count, nil
}

// Query returns articles matching the optional filters, newest first.
// A ticker filter matches when the stored set intersects the requested
// set.
func (r *ArticleRepository) Query(tickers []string, start, end *time.Time, limit int) ([]model.Article, error) {
	query := `
		SELECT source_provider, title, url, content, source_name, published, tickers, sentiment_score, sentiment_label, item_type
		FROM article
	`
	where, args := buildFilters(tickers, start, end)
	query += where
	query += fmt.Sprintf(" ORDER BY published DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		var a model.Article
		var tickerList pq.StringArray
		err := rows.Scan(
			&a.SourceProvider, &a.Title, &a.URL, &a.Content, &a.SourceName,
			&a.Published, &tickerList, &a.SentimentScore, &a.SentimentLabel, &a.ItemType,
		)
		if err != nil {
			return nil, err
		}
		a.Tickers = []string(tickerList)
		if a.Tickers == nil {
			a.Tickers = []string{}
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

// SentimentSummary returns per-label counts and the average compound
// score over the filtered set.
func (r *ArticleRepository) SentimentSummary(tickers []string, start, end *time.Time) (*model.SentimentSummary, error) {
	query := `
		SELECT sentiment_label, COUNT(*), COALESCE(AVG(sentiment_score), 0)
		FROM article
	`
	where, args := buildFilters(tickers, start, end)
	query += where
	query += " GROUP BY sentiment_label"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &model.SentimentSummary{}
	var weighted float64
	for rows.Next() {
		var label string
		var count int
		var avg float64
		if err := rows.Scan(&label, &count, &avg); err != nil {
			return nil, err
		}

		switch model.Label(label) {
		case model.LabelPositive:
			summary.Positive = count
		case model.LabelNegative:
			summary.Negative = count
		default:
			summary.Neutral = count
		}
		summary.Total += count
		weighted += avg * float64(count)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if summary.Total > 0 {
		summary.AverageScore = weighted / float64(summary.Total)
	}

	return summary, nil
}

// Purge deletes articles published before now minus the retention window
// and reports how many rows went away.
func (r *ArticleRepository) Purge(olderThanDays int) (int, error) {
	cutoff := purgeCutoff(r.now(), olderThanDays)

	result, err := r.db.Exec(`DELETE FROM article WHERE published < $1`, cutoff)
	if err != nil {
		return 0, err
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(removed), nil
}

func (r *ArticleRepository) Count() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM article`).Scan(&total)
	return total, err
}

func purgeCutoff(now time.Time, olderThanDays int) time.Time {
	return now.UTC().AddDate(0, 0, -olderThanDays)
}

func buildFilters(tickers []string, start, end *time.Time) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if len(tickers) > 0 {
		args = append(args, pq.Array(tickers))
		conditions = append(conditions, fmt.Sprintf("tickers && $%d::text[]", len(args)))
	}
	if start != nil {
		args = append(args, *start)
		conditions = append(conditions, fmt.Sprintf("published >= $%d", len(args)))
	}
	if end != nil {
		args = append(args, *end)
		conditions = append(conditions, fmt.Sprintf("published <= $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}

	where := " WHERE " + conditions[0]
	for _, c := range conditions[1:] {
		where += " AND " + c
	}
	return where, args
}
