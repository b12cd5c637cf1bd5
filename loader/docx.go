package loader

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/poiesic/docsift/core"
)

// docxLoader parses the OOXML word document body. Heading paragraphs flush
// the running prose buffer, open a new section, and are emitted as heading
// units; tables become one row-serialized unit per row tagged with the
// current section.
type docxLoader struct{}

func (l *docxLoader) Load(path string) ([]core.Unit, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening docx: %w", err)
	}
	defer zr.Close()

	doc, err := zipEntry(&zr.Reader, "word/document.xml")
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return l.parse(doc)
}

func (l *docxLoader) parse(r io.Reader) ([]core.Unit, error) {
	decoder := xml.NewDecoder(r)

	var units []core.Unit
	var buffer []string
	section := ""

	flush := func() {
		text := strings.TrimSpace(strings.Join(buffer, "\n"))
		buffer = buffer[:0]
		if text == "" {
			return
		}
		meta := core.Metadata{core.MetaDocumentType: "docx"}
		if section != "" {
			meta[core.MetaSection] = section
		}
		units = append(units, core.NewUnit(text, meta))
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing docx body: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "tbl":
			flush()
			rows, err := l.parseTable(decoder)
			if err != nil {
				return nil, err
			}
			for i, row := range rows {
				if row == "" {
					continue
				}
				meta := core.Metadata{
					core.MetaIsTable:      true,
					core.MetaRow:          i,
					core.MetaDocumentType: "docx",
				}
				if section != "" {
					meta[core.MetaSection] = section
				}
				units = append(units, core.NewUnit(row, meta))
			}
		case "p":
			text, level, err := l.parseParagraph(decoder)
			if err != nil {
				return nil, err
			}
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			if level > 0 {
				flush()
				section = text
				units = append(units, core.NewUnit(text, core.Metadata{
					core.MetaIsHeading:    true,
					core.MetaHeadingLevel: level,
					core.MetaSection:      text,
					core.MetaDocumentType: "docx",
				}))
			} else {
				buffer = append(buffer, text)
			}
		}
	}
	flush()

	return units, nil
}

// parseParagraph consumes one w:p element and returns its text plus the
// heading level derived from its paragraph style, 0 for body text.
func (l *docxLoader) parseParagraph(decoder *xml.Decoder) (string, int, error) {
	var text strings.Builder
	level := 0
	depth := 1

	for depth > 0 {
		tok, err := decoder.Token()
		if err != nil {
			return "", 0, fmt.Errorf("parsing docx paragraph: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "pStyle":
				level = headingLevelFromStyle(xmlAttr(t, "val"))
			case "t":
				var content string
				if err := decoder.DecodeElement(&content, &t); err != nil {
					return "", 0, fmt.Errorf("parsing docx run: %w", err)
				}
				depth--
				text.WriteString(content)
			case "tab":
				text.WriteByte('\t')
			case "br":
				text.WriteByte('\n')
			}
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), level, nil
}

// parseTable consumes one w:tbl element and returns pipe-serialized rows.
func (l *docxLoader) parseTable(decoder *xml.Decoder) ([]string, error) {
	var rows []string
	var cells []string
	var cell strings.Builder
	inCell := false
	depth := 1

	for depth > 0 {
		tok, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing docx table: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "tr":
				cells = cells[:0]
			case "tc":
				inCell = true
				cell.Reset()
			case "t":
				var content string
				if err := decoder.DecodeElement(&content, &t); err != nil {
					return nil, fmt.Errorf("parsing docx cell: %w", err)
				}
				depth--
				if inCell {
					cell.WriteString(content)
				}
			}
		case xml.EndElement:
			depth--
			switch t.Name.Local {
			case "tc":
				inCell = false
				cells = append(cells, cell.String())
			case "tr":
				rows = append(rows, serializeRow(cells))
			}
		}
	}
	return rows, nil
}

// headingLevelFromStyle maps "Heading1".."Heading9" style names to levels.
func headingLevelFromStyle(style string) int {
	lower := strings.ToLower(style)
	if !strings.HasPrefix(lower, "heading") {
		if lower == "title" {
			return 1
		}
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(lower, "heading"))
	if err != nil || n < 1 || n > 9 {
		return 0
	}
	return n
}

// zipEntry opens one named file inside an OOXML archive.
func zipEntry(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("opening %s: %w", name, err)
			}
			return rc, nil
		}
	}
	return nil, fmt.Errorf("archive has no %s", name)
}
