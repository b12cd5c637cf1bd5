package chunker

import (
	"strings"

	"github.com/poiesic/docsift/core"
)

// splitSections groups units by their section in first-seen order, joins
// each group with blank lines, and splits the joined text recursively.
// Every output chunk carries the metadata of its section's first unit.
func (d *Dispatcher) splitSections(units []core.Unit) ([]core.Chunk, error) {
	if len(units) == 0 {
		return nil, nil
	}

	var order []string
	groups := make(map[string][]core.Unit)
	for _, u := range units {
		section := u.Metadata.String(core.MetaSection)
		if _, seen := groups[section]; !seen {
			order = append(order, section)
		}
		groups[section] = append(groups[section], u)
	}

	var chunks []core.Chunk
	for _, section := range order {
		group := groups[section]

		parts := make([]string, len(group))
		for i, u := range group {
			parts[i] = u.Content
		}
		joined := strings.Join(parts, "\n\n")

		pieces, err := d.splitRecursive(joined)
		if err != nil {
			return nil, err
		}

		meta := group[0].Metadata
		for _, piece := range pieces {
			chunks = append(chunks, core.NewUnit(piece, meta.Clone()))
		}
	}
	return chunks, nil
}
