package schema

import "sort"

// Filter is a metadata predicate applied during similarity search. The shape
// mirrors the common vector-store filter dialect:
//
//	{"region": {"$eq": "NY"}}                                  one field
//	{"$and": [{"region": {"$eq": "NY"}}, {"year": {"$eq": "2024"}}]}
//
// A nil Filter matches every record.
type Filter map[string]any

// BuildFilter converts extracted field values into a Filter. An empty input
// yields nil, meaning the search is unfiltered. Multiple fields are combined
// with $and in sorted field order so the output is deterministic.
func BuildFilter(fields map[string]string) Filter {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 1 {
		return Filter{names[0]: map[string]any{"$eq": fields[names[0]]}}
	}

	clauses := make([]any, 0, len(names))
	for _, name := range names {
		clauses = append(clauses, map[string]any{name: map[string]any{"$eq": fields[name]}})
	}
	return Filter{"$and": clauses}
}

// Matches reports whether a record's metadata satisfies the filter.
// Unsupported operators and malformed clauses fail closed (no match) so a
// bad filter never widens a result set.
func (f Filter) Matches(metadata map[string]string) bool {
	if f == nil {
		return true
	}
	for key, clause := range f {
		if key == "$and" {
			subs, ok := clause.([]any)
			if !ok {
				return false
			}
			for _, sub := range subs {
				m, ok := sub.(map[string]any)
				if !ok || !Filter(m).Matches(metadata) {
					return false
				}
			}
			continue
		}
		if !matchesClause(metadata, key, clause) {
			return false
		}
	}
	return true
}

func matchesClause(metadata map[string]string, field string, clause any) bool {
	ops, ok := clause.(map[string]any)
	if !ok {
		return false
	}
	for op, want := range ops {
		if op != "$eq" {
			return false
		}
		have, present := metadata[field]
		wantStr, ok := want.(string)
		if !ok || !present || have != wantStr {
			return false
		}
	}
	return true
}
