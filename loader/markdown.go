package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/poiesic/docsift/core"
)

// markdownLoader scans line by line. Each ATX heading flushes the running
// buffer, opens a new section, and is emitted as a heading unit. Files
// without headings become a single unit.
type markdownLoader struct{}

func (l *markdownLoader) Load(path string) ([]core.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading markdown: %w", err)
	}

	var units []core.Unit
	var buffer []string
	section := ""

	flush := func() {
		text := strings.TrimSpace(strings.Join(buffer, "\n"))
		buffer = buffer[:0]
		if text == "" {
			return
		}
		meta := core.Metadata{core.MetaDocumentType: "markdown"}
		if section != "" {
			meta[core.MetaSection] = section
		}
		units = append(units, core.NewUnit(text, meta))
	}

	for _, line := range strings.Split(string(data), "\n") {
		level, title := headingLine(line)
		if level == 0 {
			buffer = append(buffer, line)
			continue
		}
		flush()
		section = title
		units = append(units, core.NewUnit(title, core.Metadata{
			core.MetaIsHeading:    true,
			core.MetaHeadingLevel: level,
			core.MetaSection:      title,
			core.MetaDocumentType: "markdown",
		}))
	}
	flush()

	return units, nil
}

// headingLine parses an ATX heading, returning its level and title, or 0
// for non-heading lines.
func headingLine(line string) (int, string) {
	trimmed := strings.TrimLeft(line, " ")
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, ""
	}
	rest := trimmed[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, ""
	}
	title := strings.TrimSpace(strings.TrimRight(rest, "#"))
	if title == "" {
		return 0, ""
	}
	return level, title
}
