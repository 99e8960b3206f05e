package ranking

import (
	"strings"

	"github.com/hyperjump/yomu/pkg/utils"
)

// LexicalScorer scales the section's TF-IDF weight.
type LexicalScorer struct{}

func (LexicalScorer) Name() string { return "lexical" }

func (LexicalScorer) Score(ctx *ScoringContext) float64 {
	return ctx.Lexical * LexicalMultiplier
}

// TitleTermScorer rewards each distinct query term found in the title.
type TitleTermScorer struct{}

func (TitleTermScorer) Name() string { return "title_terms" }

func (TitleTermScorer) Score(ctx *ScoringContext) float64 {
	if ctx.Query == nil {
		return 0
	}
	return TitleTermBonus * float64(CountMatchingTerms(ctx.Query.Terms, ctx.TitleTokens))
}

// BodyTermScorer rewards each distinct query term found in the body.
type BodyTermScorer struct{}

func (BodyTermScorer) Name() string { return "body_terms" }

func (BodyTermScorer) Score(ctx *ScoringContext) float64 {
	if ctx.Query == nil || ctx.Section == nil {
		return 0
	}
	return BodyTermBonus * float64(CountMatchingTerms(ctx.Query.Terms, ctx.Section.Tokens))
}

// BodyLengthScorer rewards bodies that are neither fragments nor walls of text.
type BodyLengthScorer struct{}

func (BodyLengthScorer) Name() string { return "body_length" }

func (BodyLengthScorer) Score(ctx *ScoringContext) float64 {
	if ctx.Section == nil {
		return 0
	}
	n := utils.RuneLen(ctx.Section.Content)
	if n >= MinBodyLength && n <= MaxBodyLength {
		return BodyLengthBonus
	}
	return 0
}

// TitleShapeScorer rewards titles of a plausible heading length.
type TitleShapeScorer struct{}

func (TitleShapeScorer) Name() string { return "title_shape" }

func (TitleShapeScorer) Score(ctx *ScoringContext) float64 {
	if ctx.Section == nil {
		return 0
	}
	n := len(strings.Fields(ctx.Section.Title))
	if n >= MinTitleWords && n <= MaxTitleWords {
		return TitleShapeBonus
	}
	return 0
}

// DefaultScorers returns the fixed scoring components.
func DefaultScorers() []Scorer {
	return []Scorer{
		LexicalScorer{},
		TitleTermScorer{},
		BodyTermScorer{},
		BodyLengthScorer{},
		TitleShapeScorer{},
	}
}
