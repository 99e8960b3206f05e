package extract

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/hyperjump/yomu/internal/models"
	"github.com/hyperjump/yomu/pkg/utils"
)

// htmlBlocks are elements whose whole text becomes one line.
var htmlBlocks = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "li": true, "td": true, "th": true, "dt": true, "dd": true,
	"pre": true, "caption": true, "figcaption": true, "blockquote": true,
}

// htmlSkipped are elements with no readable content.
var htmlSkipped = map[string]bool{
	"head": true, "script": true, "style": true, "noscript": true, "template": true, "nav": true,
}

// extractHTML returns the body of an HTML document as a single page with
// one line per heading or text block.
func extractHTML(content []byte) ([]models.Page, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var lines []string
	add := func(s string) {
		if s = utils.CollapseWhitespace(s); s != "" {
			lines = append(lines, s)
		}
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				add(c.Data)
			case c.Type != html.ElementNode && c.Type != html.DocumentNode:
			case htmlSkipped[c.Data]:
			case htmlBlocks[c.Data]:
				add(htmlText(c))
			default:
				walk(c)
			}
		}
	}
	walk(doc)
	return splitPages([]string{strings.Join(lines, "\n")}), nil
}

func htmlText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		if n.Type == html.ElementNode && htmlSkipped[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
