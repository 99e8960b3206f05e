// Package ranking scores sections against a persona/job query and selects a
// diverse top N.
package ranking

import (
	"math"

	"github.com/hyperjump/yomu/internal/models"
)

// Tokenizer turns text into normalized terms. Bodies, titles and the query
// must all go through the same Tokenizer.
type Tokenizer interface {
	Tokenize(text string) []string
}

// TitleTokenizer is implemented by tokenizers with a separate title analysis.
// Section titles are matched against query terms with stop words kept.
type TitleTokenizer interface {
	TokenizeTitle(text string) []string
}

// AnalyzedQuery holds the normalized form of a run's query.
type AnalyzedQuery struct {
	// Job is the original job-to-be-done text.
	Job string
	// Persona is lowercased and trimmed. It does not contribute to scores.
	Persona string
	// Terms are the distinct stems of Job in first-occurrence order.
	Terms []string
}

// CorpusStats holds corpus-level statistics for IDF calculation.
type CorpusStats struct {
	// TotalDocs is the number of sections in the corpus.
	TotalDocs int
	// DocFrequencies maps a term to the number of sections containing it.
	DocFrequencies map[string]int
}

// NewCorpusStats creates an empty CorpusStats.
func NewCorpusStats() *CorpusStats {
	return &CorpusStats{
		DocFrequencies: make(map[string]int),
	}
}

// Add counts one section's tokens into the statistics.
func (c *CorpusStats) Add(tokens []string) {
	c.TotalDocs++
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		c.DocFrequencies[tok]++
	}
}

// IDF returns the smoothed inverse document frequency ln((N+1)/(df+1)) + 1.
// It is at least 1 for any term, including terms absent from the corpus.
func (c *CorpusStats) IDF(term string) float64 {
	n := float64(c.TotalDocs)
	df := float64(c.DocFrequencies[term])
	return math.Log((n+1)/(df+1)) + 1
}

// ScoringContext provides everything a Scorer needs for one section.
type ScoringContext struct {
	Query   *AnalyzedQuery
	Section *models.Section
	// TitleTokens are the normalized terms of the section title.
	TitleTokens []string
	// Lexical is the section's TF-IDF weight against the query terms.
	Lexical float64
}

// Scorer is one additive component of a section's importance score.
type Scorer interface {
	// Score returns this component's contribution for the section in ctx.
	Score(ctx *ScoringContext) float64
	// Name returns the scorer name for debugging/logging.
	Name() string
}

// ScoreBreakdown provides per-component scoring information for debugging.
type ScoreBreakdown struct {
	// FinalScore is the clamped sum of all components.
	FinalScore float64
	// Components maps scorer names to their contributions.
	Components map[string]float64
}

// NewScoreBreakdown creates a new ScoreBreakdown instance.
func NewScoreBreakdown() *ScoreBreakdown {
	return &ScoreBreakdown{
		Components: make(map[string]float64),
	}
}
