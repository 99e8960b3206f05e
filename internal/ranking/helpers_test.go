package ranking

import (
	"fmt"
	"strings"

	"github.com/hyperjump/yomu/internal/models"
)

// fieldsTokenizer is a minimal Tokenizer for tests: lowercase, split on
// whitespace, trim punctuation, drop a few stop words. No stemming.
type fieldsTokenizer struct{}

var testStopWords = map[string]bool{"a": true, "and": true, "the": true, "of": true, "in": true, "for": true}

func (fieldsTokenizer) Tokenize(text string) []string {
	var out []string
	for _, f := range strings.Fields(strings.ToLower(text)) {
		f = strings.Trim(f, ".,;:!?\"'()")
		if f == "" || testStopWords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func section(doc *models.Document, page int, title, content string) *models.Section {
	return &models.Section{Title: title, Content: content, PageNumber: page, Document: doc}
}

// corpus builds nDocs documents with perDoc sections each, every section
// mentioning the given term so all of them score above zero.
func corpus(nDocs, perDoc int, term string) []*models.Section {
	var out []*models.Section
	for d := 0; d < nDocs; d++ {
		doc := models.NewDocument(fmt.Sprintf("doc%d.pdf", d))
		for s := 0; s < perDoc; s++ {
			out = append(out, section(doc, s+1,
				fmt.Sprintf("Part %d", s+1),
				strings.Repeat(term+" ", s+1)+"filler text here."))
		}
	}
	return out
}
