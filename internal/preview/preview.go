// Package preview renders converted Markdown to a standalone HTML
// document for spot-checking output in a browser before committing a
// vault migration.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrRender indicates the Markdown could not be rendered to HTML.
var ErrRender = errors.New("markdown rendering failed")

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: -apple-system, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.6; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; }
blockquote { border-left: 4px solid #d0d7de; margin-left: 0; padding-left: 1rem; color: #57606a; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d0d7de; padding: 0.4rem 0.8rem; }
</style>
</head>
<body>
%s</body>
</html>
`

// Renderer converts Markdown to HTML using goldmark with GFM tables,
// strikethrough, footnotes, and syntax highlighting.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer. Highlighting emits CSS classes rather
// than inline styles so the template stays in control of appearance.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
				highlighting.NewHighlighting(
					highlighting.WithFormatOptions(
						chromahtml.WithClasses(true),
					),
				),
			),
			goldmark.WithRendererOptions(
				goldmarkhtml.WithUnsafe(),
			),
		),
	}
}

// Render converts Markdown to a full HTML document. When sourceDir is
// non-empty, relative image and link targets are rewritten to absolute
// file:// URLs under it.
func (r *Renderer) Render(ctx context.Context, markdown, sourceDir string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		html []byte
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(markdown), &buf); err != nil {
			done <- result{nil, fmt.Errorf("%w: %w", ErrRender, err)}
			return
		}
		body := buf.Bytes()
		if sourceDir != "" {
			rewritten, err := RewriteRelativePaths(body, sourceDir)
			if err != nil {
				done <- result{nil, err}
				return
			}
			body = rewritten
		}
		done <- result{[]byte(fmt.Sprintf(htmlTemplate, body)), nil}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}
