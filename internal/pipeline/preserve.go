package pipeline

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Placeholder delimiters use Unicode Private Use Area characters.
// They cannot appear in the patterns of any later pass (those key on
// ASCII markup characters), so a placeholder survives every pass intact.
const (
	placeholderStart = "\uE000" // U+E000: Private Use Area start
	placeholderEnd   = "\uE001" // U+E001: Private Use Area end
)

// BlockKind identifies a preserved special block.
type BlockKind int

// The closed set of special block kinds, in preservation order.
const (
	KindCode BlockKind = iota
	KindNote
	KindMermaid
	KindUML
)

// String returns the block's tag name.
func (k BlockKind) String() string {
	switch k {
	case KindCode:
		return "code"
	case KindNote:
		return "note"
	case KindMermaid:
		return "mermaid"
	case KindUML:
		return "uml"
	}
	return "unknown"
}

// PreservedBlock is one special block lifted out of a document.
type PreservedBlock struct {
	ID   string    // opaque placeholder token substituted into the document
	Kind BlockKind // parsed once at preservation time
	Raw  string    // full matched span, delimiters included
}

// BlockTable maps placeholders back to their blocks, in document order
// per kind. It is created by PreserveBlocks, consumed by RestoreBlocks,
// and never shared between documents.
type BlockTable struct {
	blocks []PreservedBlock
}

// Len returns the number of preserved blocks.
func (t *BlockTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.blocks)
}

// Blocks returns the preserved blocks in preservation order.
func (t *BlockTable) Blocks() []PreservedBlock {
	if t == nil {
		return nil
	}
	return t.blocks
}

// blockPatterns match complete special-block spans, multi-line.
// Unterminated blocks simply never match and stay literal text.
var blockPatterns = []struct {
	kind BlockKind
	re   *regexp.Regexp
}{
	{KindCode, regexp.MustCompile(`(?s)<code.*?>.*?</code>`)},
	{KindNote, regexp.MustCompile(`(?s)<note.*?>.*?</note>`)},
	{KindMermaid, regexp.MustCompile(`(?s)<mermaid.*?>.*?</mermaid>`)},
	{KindUML, regexp.MustCompile(`(?s)<uml.*?>.*?</uml>`)},
}

// PreserveBlocks replaces every special block with a fresh placeholder
// token and records the mapping. Kinds are processed in a fixed order;
// within a kind, matches are replaced left to right.
func PreserveBlocks(content string) (string, *BlockTable) {
	table := &BlockTable{}
	for _, p := range blockPatterns {
		kind := p.kind
		content = p.re.ReplaceAllStringFunc(content, func(raw string) string {
			id := placeholderStart + uuid.NewString() + placeholderEnd
			table.blocks = append(table.blocks, PreservedBlock{ID: id, Kind: kind, Raw: raw})
			return id
		})
	}
	return content, table
}

// RestoreBlocks substitutes every placeholder with its rendered block.
// Each placeholder is consumed exactly once.
func RestoreBlocks(content string, table *BlockTable) string {
	for _, b := range table.Blocks() {
		content = strings.Replace(content, b.ID, renderBlock(b), 1)
	}
	return content
}

// HasPlaceholder reports whether content still contains a placeholder
// token. After restoration this must always be false.
func HasPlaceholder(content string) bool {
	return strings.Contains(content, placeholderStart) || strings.Contains(content, placeholderEnd)
}

// Detailed per-kind patterns used at restoration time. The raw span is
// exactly the preserved match, so these are anchored to the full string.
var (
	codeBlockRe    = regexp.MustCompile(`(?s)\A<code(?:[ \t]+([A-Za-z0-9_+#-]+))?[ \t]*>(.*)</code>\z`)
	noteBlockRe    = regexp.MustCompile(`(?s)\A<note(?:[ \t]+(tip|important|warning|caution))?[ \t]*>(.*)</note>\z`)
	mermaidBlockRe = regexp.MustCompile(`(?s)\A<mermaid.*?>(.*)</mermaid>\z`)
	umlBlockRe     = regexp.MustCompile(`(?s)\A<uml.*?>(.*)</uml>\z`)
)

// renderBlock dispatches on the block kind parsed at preservation time.
// A span the detailed pattern cannot re-parse is returned verbatim:
// malformed markup is left as literal text, never dropped.
func renderBlock(b PreservedBlock) string {
	switch b.Kind {
	case KindCode:
		return renderCodeBlock(b.Raw)
	case KindNote:
		return renderNoteBlock(b.Raw)
	case KindMermaid:
		return renderFencedBlock(b.Raw, mermaidBlockRe, "mermaid")
	case KindUML:
		return renderFencedBlock(b.Raw, umlBlockRe, "plantuml")
	}
	return b.Raw
}

// renderCodeBlock wraps the inner text in a fenced code block, keeping
// an optional language annotation as the fence hint.
func renderCodeBlock(raw string) string {
	m := codeBlockRe.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	lang := m[1]
	code := strings.TrimSpace(m[2])
	return "\n```" + lang + "\n" + code + "\n```\n"
}

// renderNoteBlock converts a note to a callout. The optional type
// annotation becomes the uppercase label, default NOTE; every body line
// is quoted.
func renderNoteBlock(raw string) string {
	m := noteBlockRe.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	label := "NOTE"
	if m[1] != "" {
		label = strings.ToUpper(m[1])
	}
	body := strings.TrimSpace(m[2])
	lines := strings.Split(body, "\n")
	return "\n> [!" + label + "]\n> " + strings.Join(lines, "\n> ") + "\n"
}

// renderFencedBlock wraps the inner text in a fenced block with the
// given tag (mermaid, plantuml).
func renderFencedBlock(raw string, re *regexp.Regexp, tag string) string {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	return "\n```" + tag + "\n" + strings.TrimSpace(m[1]) + "\n```\n"
}
