// Package segment splits page text into titled sections using line-shape header rules.
package segment

import (
	"fmt"
	"strings"

	"github.com/hyperjump/yomu/internal/models"
	"github.com/hyperjump/yomu/pkg/utils"
)

// Segmenter turns the raw text of a page into sections.
type Segmenter struct {
	rules []HeaderRule
}

// New returns a Segmenter using rules in order, or DefaultRules when none are given.
func New(rules ...HeaderRule) *Segmenter {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Segmenter{rules: rules}
}

// MatchHeader returns the name of the first rule classifying line as a header.
func (s *Segmenter) MatchHeader(line string) (string, bool) {
	for _, r := range s.rules {
		if r.Match(line) {
			return r.Name, true
		}
	}
	return "", false
}

// IsHeader reports whether line is classified as a header by any rule.
func (s *Segmenter) IsHeader(line string) bool {
	_, ok := s.MatchHeader(line)
	return ok
}

// Segment splits one page into sections in reading order. Header lines only
// set titles; a header seen before any body text replaces the pending title.
// Sections without body text are never emitted.
func (s *Segmenter) Segment(doc *models.Document, page models.Page) []*models.Section {
	var (
		sections []*models.Section
		title    string
		body     []string
	)

	flush := func() {
		content := normalizeContent(body)
		body = body[:0]
		if content == "" {
			return
		}
		t := title
		if t == "" {
			t = fmt.Sprintf("Section %d", len(sections)+1)
		}
		sections = append(sections, &models.Section{
			Title:      t,
			Content:    content,
			PageNumber: page.Number,
			Document:   doc,
		})
	}

	for _, raw := range strings.Split(page.Text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if !s.IsHeader(line) {
			body = append(body, line)
			continue
		}
		flush()
		title = line
	}
	flush()

	return sections
}

// SegmentPages segments every page of doc and concatenates the sections in page order.
func (s *Segmenter) SegmentPages(doc *models.Document, pages []models.Page) []*models.Section {
	var out []*models.Section
	for _, p := range pages {
		out = append(out, s.Segment(doc, p)...)
	}
	return out
}

func normalizeContent(lines []string) string {
	return utils.StripTrailingNumeral(utils.CollapseWhitespace(strings.Join(lines, " ")))
}
