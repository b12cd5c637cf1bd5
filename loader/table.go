package loader

import "strings"

// tablePrefix marks serialized table content so it stays recognizable after
// embedding and retrieval.
const tablePrefix = "TABLE:"

// serializeTable renders detected table lines as one prefixed block.
func serializeTable(lines []string) string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return tablePrefix + "\n" + strings.Join(cleaned, "\n")
}

// serializeRow renders one table row as pipe-delimited cells.
func serializeRow(cells []string) string {
	trimmed := make([]string, len(cells))
	for i, c := range cells {
		trimmed[i] = strings.TrimSpace(c)
	}
	return strings.Join(trimmed, " | ")
}

// serializeRecord renders a data row against its header row, skipping empty
// cells: "name: Widget | price: 9.99".
func serializeRecord(headers, cells []string) string {
	var parts []string
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		header := ""
		if i < len(headers) {
			header = strings.TrimSpace(headers[i])
		}
		if header == "" {
			parts = append(parts, cell)
		} else {
			parts = append(parts, header+": "+cell)
		}
	}
	return strings.Join(parts, " | ")
}
