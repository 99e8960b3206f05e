// Package refine condenses section bodies into bounded, whole-sentence excerpts.
package refine

import (
	"strings"

	"github.com/hyperjump/yomu/internal/models"
	"github.com/hyperjump/yomu/pkg/utils"
)

// SentenceSplitter splits text into sentences in reading order.
type SentenceSplitter interface {
	Sentences(text string) []string
}

// Refiner produces display excerpts of at most maxLength characters.
type Refiner struct {
	splitter  SentenceSplitter
	maxLength int
}

// New returns a Refiner. A non-positive maxLength uses models.DefaultExcerptLength.
func New(splitter SentenceSplitter, maxLength int) *Refiner {
	if maxLength <= 0 {
		maxLength = models.DefaultExcerptLength
	}
	return &Refiner{splitter: splitter, maxLength: maxLength}
}

// Refine normalizes whitespace, drops a trailing page number, and, when the
// text is over the limit, keeps the longest run of leading whole sentences
// that fits. If the first sentence alone is over the limit it is returned
// as is; the result is never cut mid-sentence.
func (r *Refiner) Refine(content string) string {
	text := utils.StripTrailingNumeral(utils.CollapseWhitespace(content))
	if utils.RuneLen(text) <= r.maxLength {
		return text
	}

	sentences := r.splitter.Sentences(text)
	if len(sentences) == 0 {
		return text
	}

	var b strings.Builder
	length := 0
	for i, s := range sentences {
		n := utils.RuneLen(s)
		if i > 0 {
			n++
		}
		if length+n > r.maxLength {
			if i == 0 {
				return s
			}
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
		length += n
	}
	return b.String()
}
