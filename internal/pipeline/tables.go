package pipeline

import (
	"regexp"
	"strings"
)

var (
	cellSplitRe  = regexp.MustCompile(`[|^]`)
	inlineCodeRe = regexp.MustCompile(`<code.*?>(.*?)</code>`)
	sepCellRe    = regexp.MustCompile(`^:?-{3,}:?$`)
)

// TableTransformer converts table rows line by line. A line whose first
// non-space character is | or ^ is a table row; anything else ends the
// table. A table whose first row uses ^ markers gets a Markdown
// separator row after that header.
type TableTransformer struct{}

// Transform rewrites every table in the document. Non-table lines pass
// through byte for byte.
func (t *TableTransformer) Transform(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	inTable := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "|") || strings.HasPrefix(trimmed, "^") {
			header := !inTable && strings.HasPrefix(trimmed, "^")
			inTable = true
			cells := splitRow(trimmed)
			out = append(out, formatRow(cells))
			if header {
				out = append(out, separatorRow(len(cells)))
			}
			continue
		}
		if inTable {
			inTable = false
			if trimmed != "" {
				out = append(out, "")
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// splitRow strips the boundary markers, splits on cell separators, and
// drops empty trailing fragments. A row always yields at least one cell.
func splitRow(line string) []string {
	raw := cellSplitRe.Split(strings.Trim(line, "|^"), -1)
	for len(raw) > 0 && strings.TrimSpace(raw[len(raw)-1]) == "" {
		raw = raw[:len(raw)-1]
	}
	if len(raw) == 0 {
		return []string{""}
	}
	cells := make([]string, 0, len(raw))
	for _, c := range raw {
		cells = append(cells, processCell(c))
	}
	return cells
}

// processCell normalizes one cell: embedded newlines become <br>,
// inline code spans become backticks, literal pipes are escaped.
func processCell(cell string) string {
	cell = strings.ReplaceAll(cell, "\n", "<br>")
	cell = inlineCodeRe.ReplaceAllString(cell, "`$1`")
	cell = strings.ReplaceAll(cell, "|", `\|`)
	return strings.TrimSpace(cell)
}

// formatRow re-emits a row with uniform spacing. Separator-shaped rows
// are emitted compactly so an already-converted table round-trips
// unchanged.
func formatRow(cells []string) string {
	if isSeparatorRow(cells) {
		return "|" + strings.Join(cells, "|") + "|"
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if !sepCellRe.MatchString(c) {
			return false
		}
	}
	return len(cells) > 0
}

func separatorRow(n int) string {
	return "|" + strings.Repeat("---|", n)
}
