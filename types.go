package dw2md

// Image embed width bounds in pixels.
const (
	// DefaultImageWidth is the display width applied to image embeds
	// that carry no explicit size.
	DefaultImageWidth = 300

	// MaxImageWidth caps configured widths to keep embeds renderable.
	MaxImageWidth = 4096
)

// Input contains conversion parameters for a single document.
type Input struct {
	Wikitext    string // DokuWiki markup (required)
	SourceDir   string // Directory the source file lives in, for resolving relative media paths in the preview (optional)
	HTMLPreview bool   // Render the converted Markdown to HTML in ConvertResult.HTML
}

// ConvertResult holds the output of a single conversion.
type ConvertResult struct {
	Markdown string // Converted document
	Title    string // Sanitized first top-level heading, or "Untitled"
	HTML     []byte // HTML rendering of Markdown; nil unless Input.HTMLPreview was set
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	imageWidth int
}

// WithImageWidth sets the default display width for image embeds.
// Panics if w is out of range (programmer error, similar to time.NewTicker).
func WithImageWidth(w int) Option {
	if w <= 0 || w > MaxImageWidth {
		panic("dw2md: WithImageWidth value out of range")
	}
	return func(c *Converter) {
		c.cfg.imageWidth = w
	}
}
