package pipeline

import "regexp"

// Heading rules are ordered deepest-first: six markers map to level one,
// a single marker to level six. Both delimiters must mirror; a line with
// mismatched markers is left untouched.
var headingRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?m)^====== (.+?) ======[ \t]*$`), "# $1"},
	{regexp.MustCompile(`(?m)^===== (.+?) =====[ \t]*$`), "## $1"},
	{regexp.MustCompile(`(?m)^==== (.+?) ====[ \t]*$`), "### $1"},
	{regexp.MustCompile(`(?m)^=== (.+?) ===[ \t]*$`), "#### $1"},
	{regexp.MustCompile(`(?m)^== (.+?) ==[ \t]*$`), "##### $1"},
	{regexp.MustCompile(`(?m)^= (.+?) =[ \t]*$`), "###### $1"},
}

// Bold is not rewritten: ** delimits bold in both syntaxes.
var (
	italicRe    = regexp.MustCompile(`//(.+?)//`)
	underlineRe = regexp.MustCompile(`__(.+?)__`)
	strikeRe    = regexp.MustCompile(`<del>(.*?)</del>`)

	lineBreakRe = regexp.MustCompile(`\\\\`)
	crlfRe      = regexp.MustCompile(`\r\n?`)
	blankRunRe  = regexp.MustCompile(`\n\s*\n+`)
)

// List markers are re-aligned to four-space steps. Source indentation
// comes in two-space steps, so each band of three widths collapses to
// one target depth.
var listIndentRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?m)^ {0,3}([*-]) `), "$1 "},
	{regexp.MustCompile(`(?m)^ {4,6}([*-]) `), "    $1 "},
	{regexp.MustCompile(`(?m)^ {7,9}([*-]) `), "        $1 "},
	{regexp.MustCompile(`(?m)^ {10,12}([*-]) `), "            $1 "},
}

// FormattingTransformer rewrites headings, inline styles, list
// indentation, and whitespace.
type FormattingTransformer struct{}

// Transform applies all formatting passes in order.
func (t *FormattingTransformer) Transform(content string) string {
	content = ConvertHeadings(content)
	content = ConvertInlineStyles(content)
	content = NormalizeListIndents(content)
	content = RemoveLineBreakMarkers(content)
	content = CompressBlankLines(content)
	return content
}

// NormalizeLineEndings rewrites CRLF and bare CR to LF.
func NormalizeLineEndings(content string) string {
	return crlfRe.ReplaceAllString(content, "\n")
}

// ConvertHeadings maps mirrored heading delimiters to ATX headings.
func ConvertHeadings(content string) string {
	for _, r := range headingRules {
		content = r.re.ReplaceAllString(content, r.repl)
	}
	return content
}

// ConvertInlineStyles rewrites italic, underline, and strikethrough
// spans. Underline has no Markdown equivalent and stays an HTML tag.
func ConvertInlineStyles(content string) string {
	content = italicRe.ReplaceAllString(content, "*$1*")
	content = underlineRe.ReplaceAllString(content, "<u>$1</u>")
	content = strikeRe.ReplaceAllString(content, "~~$1~~")
	return content
}

// NormalizeListIndents snaps list-item indentation to four-space steps.
func NormalizeListIndents(content string) string {
	for _, r := range listIndentRules {
		content = r.re.ReplaceAllString(content, r.repl)
	}
	return content
}

// RemoveLineBreakMarkers drops forced line-break markers; Markdown
// paragraphs wrap on their own.
func RemoveLineBreakMarkers(content string) string {
	return lineBreakRe.ReplaceAllString(content, "")
}

// CompressBlankLines collapses runs of blank lines to a single blank
// line. Blank here includes whitespace-only lines.
func CompressBlankLines(content string) string {
	return blankRunRe.ReplaceAllString(content, "\n\n")
}
