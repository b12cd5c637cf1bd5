package openai

import "strings"

// repairJSON attempts to fix common JSON formatting issues in LLM responses
// before unmarshaling: trailing commas before a closing brace/bracket and
// single-quoted strings. Anything it cannot fix is left for the JSON parser
// to reject.
func repairJSON(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]

		if inString {
			out.WriteByte(ch)
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
			out.WriteByte(ch)
		case '\'':
			// Single-quoted string: rewrite as double-quoted
			out.WriteByte('"')
			for i++; i < len(s) && s[i] != '\''; i++ {
				if s[i] == '"' {
					out.WriteString(`\"`)
				} else {
					out.WriteByte(s[i])
				}
			}
			out.WriteByte('"')
		case ',':
			// Drop the comma if the next non-space byte closes the container
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\n' || s[j] == '\t' || s[j] == '\r') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
			out.WriteByte(ch)
		default:
			out.WriteByte(ch)
		}
	}

	return out.String()
}
