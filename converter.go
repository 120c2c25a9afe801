package dw2md

import (
	"context"
	"fmt"
	"strings"

	"github.com/mdupras/go-dw2md/internal/pipeline"
	"github.com/mdupras/go-dw2md/internal/preview"
	"github.com/mdupras/go-dw2md/internal/sanitize"
)

// Converter turns DokuWiki markup into Obsidian-flavored Markdown. A
// Converter is stateless between calls and safe to reuse; use a
// ConverterPool to share converters across goroutines.
type Converter struct {
	cfg        converterConfig
	formatting *pipeline.FormattingTransformer
	tables     *pipeline.TableTransformer
	links      *pipeline.LinkMediaTransformer
	plugins    *pipeline.PluginChain
	renderer   *preview.Renderer
}

// NewConverter creates a converter with the given options.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{imageWidth: DefaultImageWidth},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.formatting = &pipeline.FormattingTransformer{}
	c.tables = &pipeline.TableTransformer{}
	c.links = pipeline.NewLinkMediaTransformer(c.cfg.imageWidth)
	c.plugins = pipeline.NewPluginChain(c.cfg.imageWidth)
	c.renderer = preview.NewRenderer()
	return c
}

// Convert runs the full pipeline on one document. Special blocks are
// shielded first and restored last; the passes in between never see
// their content.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("conversion panic: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content := pipeline.NormalizeLineEndings(input.Wikitext)
	title := sanitize.Title(content)

	content, blocks := pipeline.PreserveBlocks(content)
	content = c.formatting.Transform(content)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content = c.tables.Transform(content)
	content = c.links.Transform(content)
	content = c.plugins.Transform(content)
	content = pipeline.RestoreBlocks(content, blocks)
	content = strings.TrimSpace(content)

	result = &ConvertResult{
		Markdown: content,
		Title:    title,
	}

	if input.HTMLPreview {
		html, err := c.renderer.Render(ctx, content, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPreviewRender, err)
		}
		result.HTML = html
	}
	return result, nil
}

func validateInput(input Input) error {
	if strings.TrimSpace(input.Wikitext) == "" {
		return ErrEmptyDocument
	}
	return nil
}
