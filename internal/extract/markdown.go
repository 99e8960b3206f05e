package extract

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/hyperjump/yomu/internal/models"
	"github.com/hyperjump/yomu/pkg/utils"
)

// extractMarkdown splits content into pages on form feeds and renders each
// page as one line per heading, paragraph, list item or code line. Markup is
// dropped so "## Hotels" reaches the segmenter as "Hotels".
func extractMarkdown(content []byte) ([]models.Page, error) {
	pages, err := extractPlain(content)
	if err != nil {
		return nil, err
	}
	md := goldmark.New()
	for i := range pages {
		pages[i].Text = strings.Join(markdownLines(md, []byte(pages[i].Text)), "\n")
	}
	return pages, nil
}

func markdownLines(md goldmark.Markdown, src []byte) []string {
	doc := md.Parser().Parse(text.NewReader(src))

	var lines []string
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch c.Kind() {
			case ast.KindHeading, ast.KindParagraph, ast.KindTextBlock:
				if t := utils.CollapseWhitespace(inlineText(c, src)); t != "" {
					lines = append(lines, t)
				}
			case ast.KindCodeBlock, ast.KindFencedCodeBlock:
				segs := c.Lines()
				for i := 0; i < segs.Len(); i++ {
					seg := segs.At(i)
					if t := strings.TrimSpace(string(seg.Value(src))); t != "" {
						lines = append(lines, t)
					}
				}
			case ast.KindHTMLBlock, ast.KindThematicBreak:
			default:
				walk(c)
			}
		}
	}
	walk(doc)
	return lines
}

// inlineText concatenates the text of n's inline descendants. Line breaks
// inside a paragraph become spaces.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.RawHTML:
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}
