package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hyperjump/yomu/internal/models"
)

// odfContentPath is the main content part of OpenDocument packages.
const odfContentPath = "content.xml"

var (
	odpPage = regexp.MustCompile(`(?s)<draw:page[ >].*?</draw:page>`)
	// odfParagraph matches text:p and text:h blocks including nested spans.
	odfParagraph = regexp.MustCompile(`(?s)<text:(?:p|h)[ >].*?</text:(?:p|h)>`)
)

func readODFContent(content []byte, format string) (string, error) {
	zr, err := openZip(content, format)
	if err != nil {
		return "", err
	}
	data, err := readZipFile(zr, odfContentPath)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", format, err)
	}
	if data == nil {
		return "", fmt.Errorf("extract %s: %s not found", format, odfContentPath)
	}
	return string(data), nil
}

// extractODP returns one page per draw:page, with one line per paragraph or heading.
func extractODP(content []byte) ([]models.Page, error) {
	xml, err := readODFContent(content, "ODP")
	if err != nil {
		return nil, err
	}
	var texts []string
	for _, page := range odpPage.FindAllString(xml, -1) {
		texts = append(texts, strings.Join(blockLines(page, odfParagraph), "\n"))
	}
	return splitPages(texts), nil
}
