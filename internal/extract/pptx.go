package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hyperjump/yomu/internal/models"
)

var (
	// pptxSlide matches slide parts and captures the slide number.
	pptxSlide = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
	// aParagraph matches one DrawingML paragraph but not <a:pPr>.
	aParagraph = regexp.MustCompile(`(?s)<a:p[ >].*?</a:p>`)
)

// extractPPTX returns one page per slide, ordered by slide number, with one
// line per text paragraph.
func extractPPTX(content []byte) ([]models.Page, error) {
	zr, err := openZip(content, "PPTX")
	if err != nil {
		return nil, err
	}

	type slide struct {
		number int
		name   string
	}
	var slides []slide
	for _, f := range zr.File {
		m := pptxSlide.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slide{number: n, name: f.Name})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].number < slides[j].number })

	pages := make([]models.Page, 0, len(slides))
	for _, s := range slides {
		data, err := readZipFile(zr, s.name)
		if err != nil {
			return nil, fmt.Errorf("extract PPTX: %w", err)
		}
		text := strings.Join(blockLines(string(data), aParagraph), "\n")
		if text == "" {
			continue
		}
		pages = append(pages, models.Page{Number: s.number, Text: text})
	}
	return pages, nil
}
