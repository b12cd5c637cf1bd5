package loader

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/poiesic/docsift/core"
)

var slidePathPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// pptxLoader parses OOXML slide decks. Each slide becomes one atomic unit
// concatenating its title, body text, tables and speaker notes, tagged with
// the 1-based slide number and title.
type pptxLoader struct{}

func (l *pptxLoader) Load(path string) ([]core.Unit, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening pptx: %w", err)
	}
	defer zr.Close()

	numbers := slideNumbers(&zr.Reader)
	var units []core.Unit
	for _, n := range numbers {
		slide, err := l.parseSlide(&zr.Reader, n)
		if err != nil {
			return nil, err
		}

		notes := l.slideNotes(&zr.Reader, n)

		var parts []string
		if slide.title != "" {
			parts = append(parts, slide.title)
		}
		if slide.body != "" {
			parts = append(parts, slide.body)
		}
		if len(slide.tableRows) > 0 {
			parts = append(parts, serializeTable(slide.tableRows))
		}
		if notes != "" {
			parts = append(parts, "Notes: "+notes)
		}

		content := strings.TrimSpace(strings.Join(parts, "\n"))
		if content == "" {
			continue
		}

		meta := core.Metadata{
			core.MetaSlide:        n,
			core.MetaDocumentType: "pptx",
		}
		if slide.title != "" {
			meta[core.MetaTitle] = slide.title
		}
		units = append(units, core.NewUnit(content, meta))
	}
	return units, nil
}

type slideContent struct {
	title     string
	body      string
	tableRows []string
}

// parseSlide scans one slide part. Shape placeholders typed "title" or
// "ctrTitle" feed the title; all other text runs feed the body; a:tbl
// elements are row-serialized.
func (l *pptxLoader) parseSlide(zr *zip.Reader, n int) (*slideContent, error) {
	rc, err := zipEntry(zr, fmt.Sprintf("ppt/slides/slide%d.xml", n))
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	slide := &slideContent{}
	var titleParts, bodyParts []string
	inTitleShape := false
	var cells []string
	var cell strings.Builder
	inCell := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing slide %d: %w", n, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "ph":
				phType := xmlAttr(t, "type")
				if phType == "title" || phType == "ctrTitle" {
					inTitleShape = true
				}
			case "tr":
				cells = cells[:0]
			case "tc":
				inCell = true
				cell.Reset()
			case "t":
				var content string
				if err := decoder.DecodeElement(&content, &t); err != nil {
					return nil, fmt.Errorf("parsing slide %d text: %w", n, err)
				}
				switch {
				case inCell:
					cell.WriteString(content)
				case inTitleShape:
					titleParts = append(titleParts, content)
				default:
					bodyParts = append(bodyParts, content)
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "sp":
				inTitleShape = false
			case "tc":
				inCell = false
				cells = append(cells, cell.String())
			case "tr":
				slide.tableRows = append(slide.tableRows, serializeRow(cells))
			}
		}
	}

	slide.title = strings.TrimSpace(strings.Join(titleParts, " "))
	slide.body = strings.TrimSpace(strings.Join(bodyParts, "\n"))
	return slide, nil
}

// slideNotes returns the speaker notes text for a slide, "" when the deck
// has none.
func (l *pptxLoader) slideNotes(zr *zip.Reader, n int) string {
	rc, err := zipEntry(zr, fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n))
	if err != nil {
		return ""
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var parts []string
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "t" {
			continue
		}
		var content string
		if err := decoder.DecodeElement(&content, &start); err != nil {
			break
		}
		// Notes parts repeat the slide number as a standalone run; skip it.
		if trimmed := strings.TrimSpace(content); trimmed != "" && trimmed != strconv.Itoa(n) {
			parts = append(parts, trimmed)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// slideNumbers lists the deck's slide part numbers in ascending order.
func slideNumbers(zr *zip.Reader) []int {
	var numbers []int
	for _, f := range zr.File {
		m := slidePathPattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// xmlAttr returns a start element's attribute value by local name.
func xmlAttr(start xml.StartElement, name string) string {
	for _, attr := range start.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}
