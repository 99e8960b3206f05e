// Package nlp provides the linguistic resources used for ranking: word
// tokenization with stop-word removal and stemming, title tokenization that
// keeps stop words, and sentence splitting.
// Resources are loaded once with Load and are safe for concurrent read-only use.
package nlp

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/token/porter"
	"github.com/blevesearch/bleve/v2/analysis/token/stop"
	bleveunicode "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Resources bundles the English word analyzer and sentence tokenizer.
type Resources struct {
	analyzer      analysis.Analyzer
	titleAnalyzer analysis.Analyzer
	sentences     *sentences.DefaultSentenceTokenizer
}

// Load builds the analyzer chain and the Punkt sentence model.
// It is meant to be called once at startup; the result is shared read-only.
func Load() (*Resources, error) {
	stopWords := analysis.NewTokenMap()
	if err := stopWords.LoadBytes(en.EnglishStopWords); err != nil {
		return nil, fmt.Errorf("load english stop words: %w", err)
	}

	sentenceTokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load sentence model: %w", err)
	}

	return &Resources{
		analyzer: &analysis.DefaultAnalyzer{
			Tokenizer: bleveunicode.NewUnicodeTokenizer(),
			TokenFilters: []analysis.TokenFilter{
				lowercase.NewLowerCaseFilter(),
				alnumFilter{},
				stop.NewStopTokensFilter(stopWords),
				porter.NewPorterStemmer(),
			},
		},
		titleAnalyzer: &analysis.DefaultAnalyzer{
			Tokenizer: bleveunicode.NewUnicodeTokenizer(),
			TokenFilters: []analysis.TokenFilter{
				lowercase.NewLowerCaseFilter(),
				alnumFilter{},
				porter.NewPorterStemmer(),
			},
		},
		sentences: sentenceTokenizer,
	}, nil
}

// Tokenize returns the stems of the alphanumeric, non-stop-word tokens of text, in order.
func (r *Resources) Tokenize(text string) []string {
	return analyze(r.analyzer, text)
}

// TokenizeTitle stems the alphanumeric tokens of a section title. Stop words
// are kept, so a title such as "Own Your Trip" still yields "own".
func (r *Resources) TokenizeTitle(text string) []string {
	return analyze(r.titleAnalyzer, text)
}

func analyze(a analysis.Analyzer, text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	stream := a.Analyze([]byte(text))
	out := make([]string, 0, len(stream))
	for _, tok := range stream {
		out = append(out, string(tok.Term))
	}
	return out
}

// Sentences splits text into trimmed, non-empty sentences in order.
func (r *Resources) Sentences(text string) []string {
	var out []string
	for _, s := range r.sentences.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// alnumFilter drops tokens containing anything other than letters and digits.
type alnumFilter struct{}

func (alnumFilter) Filter(input analysis.TokenStream) analysis.TokenStream {
	out := input[:0]
	for _, tok := range input {
		if isAlnum(string(tok.Term)) {
			out = append(out, tok)
		}
	}
	return out
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
