package loader

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
	"github.com/poiesic/docsift/core"
)

// pdfLoader extracts PDF text in tiers: the embedded text layer first, then
// the table-aware converter, then an optional OCR hook. A tier is accepted
// when its average character yield per page clears the floor.
type pdfLoader struct {
	minCharsPerPage int
	ocr             OCRFunc
	logger          *slog.Logger
}

func newPDFLoader(minCharsPerPage int, ocr OCRFunc) *pdfLoader {
	return &pdfLoader{
		minCharsPerPage: minCharsPerPage,
		ocr:             ocr,
		logger:          slog.Default().With("component", "pdf-loader"),
	}
}

func (l *pdfLoader) Load(path string) ([]core.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}

	units, pages, err := l.textLayer(data)
	if err == nil && l.yieldOK(units, pages) {
		return units, nil
	}
	if err != nil {
		l.logger.Debug("text layer extraction failed", "err", err)
	} else {
		l.logger.Debug("text layer yield below floor, trying converter", "pages", pages)
	}

	units, err = l.converted(data, pages)
	if err == nil && l.yieldOK(units, pages) {
		return units, nil
	}
	if err != nil {
		l.logger.Debug("converter extraction failed", "err", err)
	}

	if l.ocr != nil {
		text, ocrErr := l.ocr(path)
		if ocrErr == nil && strings.TrimSpace(text) != "" {
			return []core.Unit{core.NewUnit(text, core.Metadata{
				core.MetaDocumentType: "pdf",
			})}, nil
		}
		if ocrErr != nil {
			l.logger.Warn("ocr tier failed", "err", ocrErr)
		}
	}

	// Converter output below the floor still beats nothing.
	if len(units) > 0 {
		return units, nil
	}
	return nil, ErrExtractionFailed
}

// textLayer reads the embedded text layer page by page. Each non-empty page
// becomes one unit tagged with its 1-based page number.
func (l *pdfLoader) textLayer(data []byte) ([]core.Unit, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, 0, fmt.Errorf("opening pdf: %w", err)
	}

	pages := reader.NumPage()
	var units []core.Unit
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			l.logger.Debug("page extraction failed", "page", i, "err", err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		units = append(units, core.NewUnit(text, core.Metadata{
			core.MetaPage:         i,
			core.MetaDocumentType: "pdf",
		}))
	}
	return units, pages, nil
}

// converted runs the whole file through the table-aware converter. Lines
// that look like delimited table rows are grouped into is_table units; the
// rest becomes prose.
func (l *pdfLoader) converted(data []byte, pages int) ([]core.Unit, error) {
	res, err := docconv.Convert(bytes.NewReader(data), "application/pdf", true)
	if err != nil {
		return nil, fmt.Errorf("converting pdf: %w", err)
	}

	body := strings.TrimSpace(res.Body)
	if body == "" {
		return nil, ErrEmptyDocument
	}

	var units []core.Unit
	var prose, table []string
	flushProse := func() {
		if text := strings.TrimSpace(strings.Join(prose, "\n")); text != "" {
			units = append(units, core.NewUnit(text, core.Metadata{
				core.MetaDocumentType: "pdf",
			}))
		}
		prose = prose[:0]
	}
	flushTable := func() {
		if len(table) == 0 {
			return
		}
		units = append(units, core.NewUnit(serializeTable(table), core.Metadata{
			core.MetaIsTable:      true,
			core.MetaDocumentType: "pdf",
		}))
		table = table[:0]
	}

	for _, line := range strings.Split(body, "\n") {
		if looksLikeTableRow(line) {
			flushProse()
			table = append(table, line)
		} else {
			flushTable()
			prose = append(prose, line)
		}
	}
	flushProse()
	flushTable()

	return units, nil
}

func (l *pdfLoader) yieldOK(units []core.Unit, pages int) bool {
	if pages < 1 {
		pages = 1
	}
	total := 0
	for _, u := range units {
		total += len(u.Content)
	}
	return total/pages >= l.minCharsPerPage
}

// looksLikeTableRow reports whether a converter output line carries the
// column separators the converter uses for tabular regions.
func looksLikeTableRow(line string) bool {
	return strings.Count(line, "|") >= 2 || strings.Count(line, "\t") >= 2
}
