package ranking

import "strings"

// QueryAnalyzer normalizes a persona and job into an AnalyzedQuery.
type QueryAnalyzer struct {
	tokenizer Tokenizer
}

// NewQueryAnalyzer creates a QueryAnalyzer using tok for term extraction.
func NewQueryAnalyzer(tok Tokenizer) *QueryAnalyzer {
	return &QueryAnalyzer{tokenizer: tok}
}

// Analyze derives query terms from the job text only. Duplicate stems are dropped.
func (qa *QueryAnalyzer) Analyze(persona, job string) *AnalyzedQuery {
	return &AnalyzedQuery{
		Job:     job,
		Persona: strings.ToLower(strings.TrimSpace(persona)),
		Terms:   distinct(qa.tokenizer.Tokenize(strings.ToLower(job))),
	}
}

// CountMatchingTerms counts how many query terms occur in tokens.
func CountMatchingTerms(terms, tokens []string) int {
	if len(terms) == 0 || len(tokens) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	count := 0
	for _, term := range terms {
		if _, ok := set[term]; ok {
			count++
		}
	}
	return count
}

func distinct(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
