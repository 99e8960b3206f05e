package extract

import (
	"regexp"
	"strings"

	"github.com/hyperjump/yomu/internal/models"
)

var (
	odsTable = regexp.MustCompile(`(?s)<table:table[ >].*?</table:table>`)
	odsRow   = regexp.MustCompile(`(?s)<table:table-row[ >].*?</table:table-row>`)
)

// extractODS returns one page per table (sheet), with one tab-separated line per row.
func extractODS(content []byte) ([]models.Page, error) {
	xml, err := readODFContent(content, "ODS")
	if err != nil {
		return nil, err
	}
	var texts []string
	for _, table := range odsTable.FindAllString(xml, -1) {
		var rows []string
		for _, row := range odsRow.FindAllString(table, -1) {
			if cells := blockLines(row, odfParagraph); len(cells) > 0 {
				rows = append(rows, strings.Join(cells, "\t"))
			}
		}
		texts = append(texts, strings.Join(rows, "\n"))
	}
	return splitPages(texts), nil
}
