package loader

import (
	"fmt"
	"os"
	"strings"

	"code.sajari.com/docconv"
	"github.com/poiesic/docsift/core"
)

// textLoader emits the whole file as one unit.
type textLoader struct{}

func (l *textLoader) Load(path string) ([]core.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading text file: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}

	return []core.Unit{core.NewUnit(text, core.Metadata{
		core.MetaDocumentType: "text",
	})}, nil
}

// legacyOfficeLoader handles the binary .doc and .ppt formats through the
// document converter. Structure is not recoverable from these formats, so
// the output is flat prose.
type legacyOfficeLoader struct {
	documentType string
}

func (l *legacyOfficeLoader) Load(path string) ([]core.Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s file: %w", l.documentType, err)
	}
	defer f.Close()

	mimeType := docconv.MimeTypeByExtension(path)
	res, err := docconv.Convert(f, mimeType, true)
	if err != nil {
		return nil, fmt.Errorf("converting %s file: %w", l.documentType, err)
	}

	text := strings.TrimSpace(res.Body)
	if text == "" {
		return nil, nil
	}

	return []core.Unit{core.NewUnit(text, core.Metadata{
		core.MetaDocumentType: l.documentType,
	})}, nil
}
