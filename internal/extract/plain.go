package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/hyperjump/yomu/internal/models"
)

// pageBreak separates pages in plain text files.
const pageBreak = "\f"

// extractPlain splits content into pages on form feeds. Invalid UTF-8
// sequences are replaced with the replacement character.
func extractPlain(content []byte) ([]models.Page, error) {
	text := string(content)
	if !utf8.Valid(content) {
		text = strings.ToValidUTF8(text, "\ufffd")
	}
	return splitPages(strings.Split(text, pageBreak)), nil
}

// splitPages numbers texts from 1 and drops blank ones.
func splitPages(texts []string) []models.Page {
	pages := make([]models.Page, 0, len(texts))
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		pages = append(pages, models.Page{Number: i + 1, Text: t})
	}
	return pages
}
