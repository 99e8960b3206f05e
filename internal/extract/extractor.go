// Package extract turns document files into page-numbered plain text.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/hyperjump/yomu/internal/models"
)

// ErrUnsupportedFormat is returned for file extensions no extractor handles.
var ErrUnsupportedFormat = errors.New("unsupported document format")

type pageFunc func(content []byte) ([]models.Page, error)

var formats = map[string]pageFunc{
	".pdf":      extractPDF,
	".txt":      extractPlain,
	".md":       extractMarkdown,
	".markdown": extractMarkdown,
	".rst":      extractPlain,
	".html":     extractHTML,
	".htm":      extractHTML,
	".docx":     extractDOCX,
	".xlsx":     extractExcel,
	".pptx":     extractPPTX,
	".odp":      extractODP,
	".ods":      extractODS,
}

// SupportedExtensions returns every extension ExtractPages understands, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(formats))
	for ext := range formats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Extractor extracts per-page plain text from document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractPages reads the file at path and returns its pages in order.
// Page numbers are 1-based and follow the source layout, so a skipped blank
// page leaves a gap. Unknown extensions fail with ErrUnsupportedFormat.
func (e *Extractor) ExtractPages(path string) ([]models.Page, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := formats[ext]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return e.ExtractPagesBytes(content, ext)
}

// ExtractPagesBytes extracts pages from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf"). Page text is NFKC
// normalized, which unfolds ligatures such as "ﬁ" left by PDF fonts.
func (e *Extractor) ExtractPagesBytes(content []byte, ext string) ([]models.Page, error) {
	fn, ok := formats[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	pages, err := fn(content)
	if err != nil {
		return nil, err
	}
	for i := range pages {
		pages[i].Text = norm.NFKC.String(pages[i].Text)
	}
	return pages, nil
}
