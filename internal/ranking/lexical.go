package ranking

// TermFrequency returns the share of tokens equal to term. An empty token
// list counts as length 1.
func TermFrequency(term string, tokens []string) float64 {
	n := len(tokens)
	if n == 0 {
		n = 1
	}
	count := 0
	for _, tok := range tokens {
		if tok == term {
			count++
		}
	}
	return float64(count) / float64(n)
}

// BuildCorpusStats computes document frequencies over every section's tokens.
func BuildCorpusStats(docs [][]string) *CorpusStats {
	stats := NewCorpusStats()
	for _, tokens := range docs {
		stats.Add(tokens)
	}
	return stats
}

// LexicalWeights returns one TF-IDF weight per entry of docs, in the same
// order: the sum over terms of tf(term) * idf(term).
func LexicalWeights(docs [][]string, terms []string) []float64 {
	stats := BuildCorpusStats(docs)
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = stats.IDF(term)
	}

	weights := make([]float64, len(docs))
	for i, tokens := range docs {
		var w float64
		for j, term := range terms {
			w += TermFrequency(term, tokens) * idf[j]
		}
		weights[i] = w
	}
	return weights
}
