// Package models defines core data structures for documents, sections, queries, and digests.
package models

import (
	"path/filepath"
	"strings"

	"github.com/hyperjump/yomu/internal/fileid"
)

// Document is a source file taking part in a ranking run.
type Document struct {
	// ID is derived from the path the document was loaded from. Sections are grouped by it.
	ID string `json:"id"`
	// Filename is the base name shown in digest output.
	Filename string `json:"filename"`
	// Title is the filename without its extension.
	Title string `json:"title"`
}

// NewDocument builds a Document for the file at path.
func NewDocument(path string) *Document {
	base := filepath.Base(path)
	return &Document{
		ID:       fileid.DocumentID(path),
		Filename: base,
		Title:    strings.TrimSuffix(base, filepath.Ext(base)),
	}
}

// Page is the raw text of one page of a document.
type Page struct {
	Number int    `json:"page_number"`
	Text   string `json:"text"`
}

// Section is a titled span of a page's text and the unit of ranking.
type Section struct {
	Title      string    `json:"section_title"`
	Content    string    `json:"content"`
	PageNumber int       `json:"page_number"`
	Document   *Document `json:"-"`

	// Tokens are the stems of Content, filled in once by the ranker.
	Tokens []string `json:"-"`
	// ImportanceScore is only meaningful after a ranking pass.
	ImportanceScore float64 `json:"importance_score"`
	// ImportanceRank is 1-based for selected sections and 0 otherwise.
	ImportanceRank int `json:"importance_rank,omitempty"`
}

// DocumentID returns the ID of the owning document, or "" when detached.
func (s *Section) DocumentID() string {
	if s.Document == nil {
		return ""
	}
	return s.Document.ID
}

// DocumentName returns the display filename of the owning document.
func (s *Section) DocumentName() string {
	if s.Document == nil {
		return ""
	}
	return s.Document.Filename
}
