// Package cli provides CLI utilities for yomu: request loading and digest output.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hyperjump/yomu/internal/models"
)

// OutputFormat is the format for digest output.
type OutputFormat string

const (
	// OutputJSON is indented JSON for machine consumption (default).
	OutputJSON OutputFormat = "json"
	// OutputText is a human-readable report with excerpts.
	OutputText OutputFormat = "text"
	// OutputCompact is one line per selected section.
	OutputCompact OutputFormat = "compact"
)

// WriteDigest writes d to w in the given format. Unknown formats fall back to JSON.
func WriteDigest(w io.Writer, d *models.Digest, format OutputFormat) error {
	switch format {
	case OutputText:
		return writeDigestText(w, d)
	case OutputCompact:
		return writeDigestCompact(w, d)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(d)
	}
}

// WriteDigestFile writes d to path, creating parent directories as needed.
func WriteDigestFile(path string, d *models.Digest, format OutputFormat) error {
	var buf bytes.Buffer
	if err := WriteDigest(&buf, d, format); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// textStyles are the lipgloss styles of the text report. Colors only show
// when the writer is a terminal.
type textStyles struct {
	title lipgloss.Style
	meta  lipgloss.Style
	label lipgloss.Style
}

func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return textStyles{
		title: base.Copy().Bold(true).Foreground(lipgloss.Color("11")),
		meta:  base.Copy().Foreground(lipgloss.Color("8")),
		label: base.Copy().Bold(true),
	}
}

func writeDigestText(w io.Writer, d *models.Digest) error {
	st := newTextStyles(w)
	m := d.Metadata
	fmt.Fprintf(w, "\n%s %s\n%s %s\n", st.label.Render("Persona:"), m.Persona, st.label.Render("Job:"), m.JobToBeDone)
	fmt.Fprintln(w, st.meta.Render(fmt.Sprintf("Selected %d sections from %d documents in %.2fs",
		len(d.ExtractedSections), len(m.InputDocuments), m.ProcessingTimeSeconds)))
	if len(m.SkippedDocuments) > 0 {
		fmt.Fprintf(w, "%s %s\n", st.label.Render("Skipped:"), strings.Join(m.SkippedDocuments, ", "))
	}
	fmt.Fprintln(w)
	for _, s := range d.SubsectionAnalysis {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintln(w, st.title.Render(fmt.Sprintf("#%d %s", s.ImportanceRank, s.SectionTitle)))
		fmt.Fprintln(w, st.meta.Render(fmt.Sprintf("%s, page %d", s.Document, s.PageNumber)))
		fmt.Fprintf(w, "\n%s\n\n", TruncateWords(s.RefinedText, 60))
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeDigestCompact(w io.Writer, d *models.Digest) error {
	for _, s := range d.ExtractedSections {
		if _, err := fmt.Fprintf(w, "%d\t%s\tp.%d\t%s\n", s.ImportanceRank, s.Document, s.PageNumber, s.SectionTitle); err != nil {
			return err
		}
	}
	return nil
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
