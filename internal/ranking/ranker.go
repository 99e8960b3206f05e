package ranking

import (
	"sort"

	"go.uber.org/zap"

	"github.com/hyperjump/yomu/internal/models"
	"github.com/hyperjump/yomu/pkg/utils"
)

// Ranker combines the scorers to rank sections and selects a diverse top N.
type Ranker struct {
	config    *RankingConfig
	tokenizer Tokenizer
	analyzer  *QueryAnalyzer
	scorers   []Scorer
	logger    *zap.Logger
}

// NewRanker creates a new Ranker with the given tokenizer and configuration.
func NewRanker(tok Tokenizer, config *RankingConfig) *Ranker {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()

	return &Ranker{
		config:    config,
		tokenizer: tok,
		analyzer:  NewQueryAnalyzer(tok),
		scorers:   DefaultScorers(),
		logger:    zap.NewNop(),
	}
}

// WithLogger sets the logger used for per-section score breakdowns at debug level.
func (r *Ranker) WithLogger(logger *zap.Logger) *Ranker {
	r.logger = utils.OrNop(logger)
	return r
}

func (r *Ranker) titleTokens(title string) []string {
	if tt, ok := r.tokenizer.(TitleTokenizer); ok {
		return tt.TokenizeTitle(title)
	}
	return r.tokenizer.Tokenize(title)
}

// AnalyzeQuery normalizes persona and job into query terms.
func (r *Ranker) AnalyzeQuery(persona, job string) *AnalyzedQuery {
	return r.analyzer.Analyze(persona, job)
}

// Score assigns ImportanceScore to every section. Tokens of all sections are
// computed before any weight, since document frequencies span the whole corpus.
func (r *Ranker) Score(query *AnalyzedQuery, sections []*models.Section) {
	docs := make([][]string, len(sections))
	for i, sec := range sections {
		if sec.Tokens == nil {
			sec.Tokens = r.tokenizer.Tokenize(sec.Content)
		}
		docs[i] = sec.Tokens
	}

	weights := LexicalWeights(docs, query.Terms)
	for i, sec := range sections {
		ctx := &ScoringContext{
			Query:       query,
			Section:     sec,
			TitleTokens: r.titleTokens(sec.Title),
			Lexical:     weights[i],
		}
		b := r.Breakdown(ctx)
		sec.ImportanceScore = b.FinalScore

		if ce := r.logger.Check(zap.DebugLevel, "section scored"); ce != nil {
			ce.Write(
				zap.String("document", sec.DocumentName()),
				zap.Int("page", sec.PageNumber),
				zap.String("title", utils.Truncate(sec.Title, 60)),
				zap.Float64("score", b.FinalScore),
				zap.Any("components", b.Components),
			)
		}
	}
}

// Breakdown returns each scorer's contribution and the clamped total.
func (r *Ranker) Breakdown(ctx *ScoringContext) *ScoreBreakdown {
	breakdown := NewScoreBreakdown()
	var total float64
	for _, s := range r.scorers {
		v := s.Score(ctx)
		breakdown.Components[s.Name()] = v
		total += v
	}
	if total < 0 {
		total = 0
	}
	breakdown.FinalScore = total
	return breakdown
}

// Select orders sections by score, keeping emission order among equal
// scores, and accepts at most MaxPerDocument sections per document until
// maxSections are accepted. Accepted sections get a 1-based ImportanceRank.
// The input slice is not reordered.
func (r *Ranker) Select(sections []*models.Section, maxSections int) []*models.Section {
	if maxSections <= 0 {
		maxSections = r.config.MaxSections
	}

	sorted := make([]*models.Section, len(sections))
	copy(sorted, sections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ImportanceScore > sorted[j].ImportanceScore
	})

	perDoc := make(map[string]int)
	selected := make([]*models.Section, 0, min(maxSections, len(sorted)))
	for _, sec := range sorted {
		sec.ImportanceRank = 0
	}
	for _, sec := range sorted {
		if len(selected) == maxSections {
			break
		}
		id := sec.DocumentID()
		if perDoc[id] >= MaxPerDocument {
			continue
		}
		perDoc[id]++
		selected = append(selected, sec)
		sec.ImportanceRank = len(selected)
	}
	return selected
}

// Rank scores all sections and selects the top maxSections (the configured
// cap when maxSections is not positive).
func (r *Ranker) Rank(query *AnalyzedQuery, sections []*models.Section, maxSections int) []*models.Section {
	r.Score(query, sections)
	return r.Select(sections, maxSections)
}
