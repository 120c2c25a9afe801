package pipeline

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Media paths exclude > so plugin spans like {{tag>...}} never match.
	// The link patterns capture a leading ! so embeds, including the
	// ones the media rewrite just produced, are left alone.
	mediaRe        = regexp.MustCompile(`\{\{([^|}>]+?)(?:\|([^}]*))?\}\}`)
	linkWithTextRe = regexp.MustCompile(`(!?)\[\[([^|\]]+)\|([^\]]+)\]\]`)
	linkRe         = regexp.MustCompile(`(!?)\[\[([^|\]]+)\]\]`)
)

// imageExts are the extensions rendered as sized image embeds. Anything
// else becomes a plain file embed.
var imageExts = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"svg":  true,
	"gif":  true,
}

// LinkMediaTransformer rewrites media embeds and wiki links. Namespace
// prefixes are dropped: the vault is flat, so only the final path
// segment identifies a target.
type LinkMediaTransformer struct {
	imageWidth int
}

// NewLinkMediaTransformer returns a transformer that sizes image embeds
// at the given display width.
func NewLinkMediaTransformer(imageWidth int) *LinkMediaTransformer {
	return &LinkMediaTransformer{imageWidth: imageWidth}
}

// Transform rewrites media first so {{...}} spans are gone before the
// link patterns run. The link patterns skip !-prefixed embeds, so the
// output of one rewrite is never the input of another.
func (t *LinkMediaTransformer) Transform(content string) string {
	content = mediaRe.ReplaceAllStringFunc(content, t.rewriteMedia)
	content = linkWithTextRe.ReplaceAllStringFunc(content, rewriteLinkWithText)
	content = linkRe.ReplaceAllStringFunc(content, rewriteBareLink)
	return content
}

// rewriteMedia converts a media span to an embed. Captions do not
// survive: embeds carry no caption syntax.
func (t *LinkMediaTransformer) rewriteMedia(match string) string {
	m := mediaRe.FindStringSubmatch(match)
	name := lastSegment(strings.TrimSpace(m[1]))
	// Drop sizing and cache query suffixes like ?400 or ?nocache.
	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}
	if isImage(name) {
		return fmt.Sprintf("![[%s | %d]]", name, t.imageWidth)
	}
	return fmt.Sprintf("![[%s]]", name)
}

func rewriteLinkWithText(match string) string {
	m := linkWithTextRe.FindStringSubmatch(match)
	if m[1] == "!" {
		return match
	}
	return rewriteLink(strings.TrimSpace(m[2]), strings.TrimSpace(m[3]))
}

func rewriteBareLink(match string) string {
	m := linkRe.FindStringSubmatch(match)
	if m[1] == "!" {
		return match
	}
	return rewriteLink(strings.TrimSpace(m[2]), "")
}

// rewriteLink converts one wiki link. External targets become standard
// Markdown links; internal targets stay wiki links with the namespace
// stripped and any section anchor preserved.
func rewriteLink(target, text string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		if text == "" {
			text = target
		}
		return fmt.Sprintf("[%s](%s)", text, target)
	}
	name := lastSegment(target)
	if i := strings.Index(name, "#"); i >= 0 {
		// Anchored links keep their text: the anchor rarely reads well
		// as a label.
		if text != "" {
			return fmt.Sprintf("[[%s|%s]]", name, text)
		}
		return fmt.Sprintf("[[%s]]", name)
	}
	if text != "" && !strings.EqualFold(text, name) {
		return fmt.Sprintf("[[%s|%s]]", name, text)
	}
	return fmt.Sprintf("[[%s]]", name)
}

// lastSegment returns the part after the final namespace separator.
func lastSegment(path string) string {
	if i := strings.LastIndex(path, ":"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func isImage(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	return imageExts[ext]
}
