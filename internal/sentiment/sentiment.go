package sentiment

import (
	"fmt"
	"log/slog"
	"strings"

	"sentinews/internal/config"
	"sentinews/internal/model"
)

// Label thresholds on the compound score. Fixed constants, not tunable
// per run.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// Engine produces a compound polarity in [-1, 1] for a piece of text.
type Engine interface {
	Compound(text string) (float64, error)
}

// Classify maps a compound score onto a label.
func Classify(score float64) model.Label {
	switch {
	case score >= PositiveThreshold:
		return model.LabelPositive
	case score <= NegativeThreshold:
		return model.LabelNegative
	default:
		return model.LabelNeutral
	}
}

// Scorer applies an Engine to article content and sets score and label
// together so they can never disagree.
type Scorer struct {
	engine Engine
}

func NewScorer(engine Engine) *Scorer {
	return &Scorer{engine: engine}
}

// Score returns the compound score and label for content. Empty content
// and engine failures both come back neutral; scoring never errors.
func (s *Scorer) Score(content string) (float64, model.Label) {
	if strings.TrimSpace(content) == "" {
		return 0, model.LabelNeutral
	}

	score, err := s.engine.Compound(content)
	if err != nil {
		slog.Warn("sentiment engine failed, falling back to neutral", "error", err)
		return 0, model.LabelNeutral
	}

	return score, Classify(score)
}

func (s *Scorer) ScoreAll(articles []model.Article) []model.Article {
	for i := range articles {
		articles[i].SentimentScore, articles[i].SentimentLabel = s.Score(articles[i].Content)
	}
	return articles
}

// NewEngine builds the configured engine. VADER is the default and needs
// no credentials.
func NewEngine(cfg *config.Config) (Engine, error) {
	switch cfg.SentimentEngine {
	case "", "vader":
		return NewVaderEngine(), nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("sentiment engine openai requires OPENAI_API_KEY")
		}
		return NewOpenAIEngine(cfg.OpenAIKey), nil
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, fmt.Errorf("sentiment engine anthropic requires ANTHROPIC_API_KEY")
		}
		return NewAnthropicEngine(cfg.AnthropicKey), nil
	default:
		return nil, fmt.Errorf("unknown sentiment engine %q", cfg.SentimentEngine)
	}
}
