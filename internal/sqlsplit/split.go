// Package sqlsplit divides multi-statement SQL text into individually
// executable statements.
package sqlsplit

import "strings"

// Split breaks raw SQL on semicolons that sit outside quoted literals.
// Lines whose trimmed content starts with "--" are dropped first; a "--"
// later in a line is left alone. Inside a literal, a doubled quote of the
// same kind is an escape and a quote preceded by a backslash does not
// close the string. Statements come back trimmed, without the delimiter;
// trailing text after the last semicolon counts as a statement too.
func Split(raw string) []string {
	text := stripCommentLines(raw)

	var (
		statements []string
		current    strings.Builder
		inSingle   bool
		inDouble   bool
	)

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '\'' && !inDouble:
			if inSingle && i+1 < len(text) && text[i+1] == '\'' {
				current.WriteByte(ch)
				current.WriteByte(text[i+1])
				i++
				continue
			}
			if !backslashed(text, i) {
				inSingle = !inSingle
			}
			current.WriteByte(ch)
		case ch == '"' && !inSingle:
			if inDouble && i+1 < len(text) && text[i+1] == '"' {
				current.WriteByte(ch)
				current.WriteByte(text[i+1])
				i++
				continue
			}
			if !backslashed(text, i) {
				inDouble = !inDouble
			}
			current.WriteByte(ch)
		case ch == ';' && !inSingle && !inDouble:
			flush()
		default:
			current.WriteByte(ch)
		}
	}
	flush()

	return statements
}

func backslashed(s string, i int) bool {
	return i > 0 && s[i-1] == '\\'
}

func stripCommentLines(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
