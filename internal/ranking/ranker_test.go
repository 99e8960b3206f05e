package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/yomu/internal/models"
	"github.com/hyperjump/yomu/internal/nlp"
)

func TestNewRanker(t *testing.T) {
	ranker := NewRanker(fieldsTokenizer{}, nil)
	if ranker.config.MaxSections != 10 {
		t.Errorf("MaxSections = %d, want 10", ranker.config.MaxSections)
	}

	ranker = NewRanker(fieldsTokenizer{}, &RankingConfig{MaxSections: 3})
	if ranker.config.MaxSections != 3 {
		t.Errorf("MaxSections = %d, want 3", ranker.config.MaxSections)
	}
}

func TestRanker_foodAndLodging(t *testing.T) {
	res, err := nlp.Load()
	require.NoError(t, err)

	doc := models.NewDocument("guide.pdf")
	sections := []*models.Section{
		section(doc, 1, "History", "The castle was built long ago by a local lord."),
		section(doc, 2, "Local Food Guide", "Try the ramen stalls near the station."),
	}

	r := NewRanker(res, nil)
	q := r.AnalyzeQuery("Travel Planner", "food and lodging")
	require.Equal(t, []string{"food", "lodg"}, q.Terms)

	got := r.Rank(q, sections, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "Local Food Guide", got[0].Title)
	assert.Equal(t, 1, got[0].ImportanceRank)
	assert.Greater(t, sections[1].ImportanceScore, sections[0].ImportanceScore)
}

func TestRanker_diversityCap(t *testing.T) {
	r := NewRanker(fieldsTokenizer{}, nil)
	sections := corpus(3, 5, "temples")
	q := r.AnalyzeQuery("", "temples")

	got := r.Rank(q, sections, 10)

	for _, s := range sections {
		require.Greater(t, s.ImportanceScore, 0.0)
	}
	require.Len(t, got, 6)
	perDoc := map[string]int{}
	for _, s := range got {
		perDoc[s.DocumentID()]++
	}
	for id, n := range perDoc {
		assert.LessOrEqual(t, n, MaxPerDocument, "document %s", id)
	}
}

func TestRanker_capRespected(t *testing.T) {
	r := NewRanker(fieldsTokenizer{}, nil)
	sections := corpus(12, 1, "ramen")
	q := r.AnalyzeQuery("", "ramen")

	assert.Len(t, r.Rank(q, sections, 10), 10)
	assert.Len(t, r.Rank(q, sections, 4), 4)
	assert.Len(t, r.Rank(q, sections, 0), 10, "non-positive cap falls back to config")
	assert.Len(t, r.Rank(q, sections[:3], 10), 3)
}

func TestRanker_monotonic(t *testing.T) {
	r := NewRanker(fieldsTokenizer{}, nil)
	sections := corpus(6, 4, "onsen")
	got := r.Rank(r.AnalyzeQuery("", "onsen hot spring"), sections, 10)

	for i := 1; i < len(got); i++ {
		if got[i].ImportanceRank != got[i-1].ImportanceRank+1 {
			t.Errorf("rank %d follows %d", got[i].ImportanceRank, got[i-1].ImportanceRank)
		}
		if got[i].ImportanceScore > got[i-1].ImportanceScore {
			t.Errorf("score at rank %d (%v) exceeds rank %d (%v)",
				got[i].ImportanceRank, got[i].ImportanceScore, got[i-1].ImportanceRank, got[i-1].ImportanceScore)
		}
	}
}

func TestRanker_deterministic(t *testing.T) {
	run := func() []float64 {
		r := NewRanker(fieldsTokenizer{}, nil)
		sections := corpus(4, 3, "castle")
		var out []float64
		for _, s := range r.Rank(r.AnalyzeQuery("", "castle tour"), sections, 10) {
			out = append(out, s.ImportanceScore, float64(s.ImportanceRank), float64(s.PageNumber))
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestRanker_Select_stableTies(t *testing.T) {
	a := models.NewDocument("a.pdf")
	b := models.NewDocument("b.pdf")
	sections := []*models.Section{
		section(a, 1, "A1", "x"),
		section(a, 2, "A2", "x"),
		section(a, 3, "A3", "x"),
		section(b, 1, "B1", "x"),
		section(b, 2, "B2", "x"),
	}
	for _, s := range sections {
		s.ImportanceScore = 3
	}
	sections[4].ImportanceScore = 4

	r := NewRanker(fieldsTokenizer{}, nil)
	got := r.Select(sections, 10)

	var titles []string
	for _, s := range got {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"B2", "A1", "A2", "B1"}, titles)
	assert.Equal(t, 0, sections[2].ImportanceRank, "rejected section keeps no rank")
	assert.Equal(t, "A1", sections[0].Title, "input order untouched")
}

type constScorer float64

func (c constScorer) Name() string { return "const" }

func (c constScorer) Score(ctx *ScoringContext) float64 { return float64(c) }

func TestRanker_Breakdown(t *testing.T) {
	r := NewRanker(fieldsTokenizer{}, nil)
	ctx := &ScoringContext{
		Query:       &AnalyzedQuery{Terms: []string{"food"}},
		Section:     &models.Section{Title: "Street Food", Content: "food", Tokens: []string{"food"}},
		TitleTokens: []string{"street", "food"},
		Lexical:     1,
	}

	b := r.Breakdown(ctx)
	assert.Equal(t, 10.0, b.Components["lexical"])
	assert.Equal(t, 5.0, b.Components["title_terms"])
	assert.Equal(t, 2.0, b.Components["body_terms"])
	assert.Equal(t, 0.0, b.Components["body_length"])
	assert.Equal(t, 1.0, b.Components["title_shape"])
	assert.Equal(t, 18.0, b.FinalScore)

	r.scorers = []Scorer{constScorer(-4), constScorer(1)}
	assert.Equal(t, 0.0, r.Breakdown(ctx).FinalScore, "total is clamped at zero")
}

func TestRanker_Score_titleMatchesStopWordStem(t *testing.T) {
	res, err := nlp.Load()
	require.NoError(t, err)

	doc := models.NewDocument("guide.pdf")
	own := section(doc, 1, "Own Your Trip", "Travel tips for the journey ahead.")
	plan := section(doc, 2, "Plan Your Trip", "Travel tips for the journey ahead.")

	r := NewRanker(res, nil)
	r.Score(r.AnalyzeQuery("Traveler", "owning the itinerary"), []*models.Section{own, plan})
	assert.InDelta(t, 5.0, own.ImportanceScore-plan.ImportanceScore, 1e-9, "title term bonus for \"own\"")
}

func TestRanker_Score_keepsExistingTokens(t *testing.T) {
	r := NewRanker(fieldsTokenizer{}, nil)
	s := section(models.NewDocument("a.pdf"), 1, "Intro", "nothing relevant")
	s.Tokens = []string{"sushi"}

	r.Score(r.AnalyzeQuery("", "sushi"), []*models.Section{s})
	assert.Equal(t, []string{"sushi"}, s.Tokens)
	assert.Greater(t, s.ImportanceScore, 0.0)
}
