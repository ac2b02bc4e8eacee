package sentiment

import "github.com/jonreiter/govader"

// VaderEngine wraps the VADER lexicon analyzer. Deterministic: the same
// text always yields the same compound score.
type VaderEngine struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderEngine() *VaderEngine {
	return &VaderEngine{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (e *VaderEngine) Compound(text string) (float64, error) {
	return e.analyzer.PolarityScores(text).Compound, nil
}
