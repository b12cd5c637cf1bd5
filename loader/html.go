package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/poiesic/docsift/core"
)

// htmlLoader extracts visible page text, dropping scripts, styles and the
// chrome elements that carry no document content.
type htmlLoader struct{}

func (l *htmlLoader) Load(path string) ([]core.Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening html: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	doc.Find("script, style, nav, header, footer, noscript, iframe").Remove()

	meta := core.Metadata{core.MetaDocumentType: "html"}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		meta[core.MetaTitle] = title
	}

	text := collapseWhitespace(doc.Find("body").Text())
	if text == "" {
		// Fragment files have no body element.
		text = collapseWhitespace(doc.Text())
	}
	if text == "" {
		return nil, nil
	}

	return []core.Unit{core.NewUnit(text, meta)}, nil
}

// collapseWhitespace folds runs of blank lines and intra-line whitespace
// left behind by tag removal.
func collapseWhitespace(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
