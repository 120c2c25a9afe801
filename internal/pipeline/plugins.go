package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	tagSpanRe   = regexp.MustCompile(`\{\{tag>(.*?)\}\}`)
	tagTokenRe  = regexp.MustCompile(`"([^"]+)"|(\S+)`)
	radarRe     = regexp.MustCompile(`(?s)<radar.*?>(.*?)</radar>`)
	drawioRe    = regexp.MustCompile(`\{\{drawio>([^|}]+)(?:\|[^}]*)?\}\}`)
	indexMenuRe = regexp.MustCompile(`\{\{indexmenu>[^}]*\}\}`)
	includeRe   = regexp.MustCompile(`\{\{(?:page|section)>([^|}#]+)(?:#[^|}]*)?(?:\|[^}]*)?\}\}`)
	fontRe      = regexp.MustCompile(`(?s)<font.*?>(.*?)</font>`)

	noprintWrapRe = regexp.MustCompile(`(?s)<WRAP[ \t]+noprint[^>]*>(.*?)</WRAP>`)
	wrapSpanRe    = regexp.MustCompile(`(?s)<(?:WRAP|wrap|div|block)[^>]*>(.*?)</(?:WRAP|wrap|div|block)>`)
	strayWrapRe   = regexp.MustCompile(`</?(?:WRAP|wrap)[^>]*>`)

	tagSeparatorReplacer = strings.NewReplacer(" ", "_", "-", "_")
)

// PluginStage is one named rewrite in the plugin chain.
type PluginStage struct {
	Name string
	Fn   func(string) string
}

// PluginChain rewrites third-party plugin syntax through an ordered
// sequence of independent stages. Order matters only for wraps, which
// must see noprint sections before the generic wrap rule.
type PluginChain struct {
	stages []PluginStage
}

// NewPluginChain builds the standard chain. Drawio embeds use the given
// image width.
func NewPluginChain(imageWidth int) *PluginChain {
	return &PluginChain{stages: []PluginStage{
		{"tags", ConvertTags},
		{"radar", ConvertRadarCharts},
		{"drawio", func(content string) string { return ConvertDrawIO(content, imageWidth) }},
		{"indexmenu", RemoveIndexMenu},
		{"include", ConvertIncludes},
		{"wrap", ConvertWraps},
		{"font", ConvertFontTags},
	}}
}

// Transform runs every stage in order.
func (c *PluginChain) Transform(content string) string {
	for _, s := range c.stages {
		content = s.Fn(content)
	}
	return content
}

// StageNames returns the stage names in execution order.
func (c *PluginChain) StageNames() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.Name
	}
	return names
}

// ConvertTags rewrites tag spans to hashtags. Quoted tokens keep their
// spaces as underscores; hyphens become underscores too, since a hyphen
// ends a hashtag in most Markdown tools.
func ConvertTags(content string) string {
	return tagSpanRe.ReplaceAllStringFunc(content, func(match string) string {
		inner := tagSpanRe.FindStringSubmatch(match)[1]
		var tags []string
		for _, tok := range tagTokenRe.FindAllStringSubmatch(inner, -1) {
			raw := tok[1]
			if raw == "" {
				raw = tok[2]
			}
			tags = append(tags, "#"+tagSeparatorReplacer.Replace(raw))
		}
		return strings.Join(tags, " ")
	})
}

// ConvertRadarCharts fences radar chart data as a comment block; the
// data has no Markdown equivalent but should not be lost.
func ConvertRadarCharts(content string) string {
	return radarRe.ReplaceAllString(content,
		"```comment\nRadar chart not supported in Obsidian:\n$1\n```")
}

// ConvertDrawIO rewrites drawio spans to sized image embeds.
func ConvertDrawIO(content string, imageWidth int) string {
	return drawioRe.ReplaceAllStringFunc(content, func(match string) string {
		path := strings.TrimSpace(drawioRe.FindStringSubmatch(match)[1])
		return fmt.Sprintf("![[%s | %d]]", lastSegment(path), imageWidth)
	})
}

// RemoveIndexMenu drops indexmenu spans; generated navigation has no
// place in a static vault.
func RemoveIndexMenu(content string) string {
	return indexMenuRe.ReplaceAllString(content, "")
}

// ConvertIncludes rewrites page and section includes as note embeds.
// Section anchors and display parameters are dropped: embeds address
// whole notes.
func ConvertIncludes(content string) string {
	return includeRe.ReplaceAllStringFunc(content, func(match string) string {
		target := strings.TrimSpace(includeRe.FindStringSubmatch(match)[1])
		return fmt.Sprintf("![[%s]]", lastSegment(target))
	})
}

// ConvertWraps unwraps noprint sections to their content, turns other
// wrap, div, and block sections into callouts, and strips any stray
// unmatched wrap tags.
func ConvertWraps(content string) string {
	content = noprintWrapRe.ReplaceAllString(content, "$1")
	content = wrapSpanRe.ReplaceAllStringFunc(content, func(match string) string {
		body := strings.TrimSpace(wrapSpanRe.FindStringSubmatch(match)[1])
		if body == "" {
			return ""
		}
		lines := strings.Split(body, "\n")
		return "\n> [!TIP]\n> " + strings.Join(lines, "\n> ") + "\n"
	})
	return strayWrapRe.ReplaceAllString(content, "")
}

// ConvertFontTags keeps font-styled text visible as a highlight; the
// face and color attributes are not representable.
func ConvertFontTags(content string) string {
	return fontRe.ReplaceAllString(content, "==$1==")
}
