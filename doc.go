// Package dw2md converts DokuWiki markup to Obsidian-flavored Markdown.
//
// # Quick Start
//
// Create a converter and convert a document:
//
//	conv := dw2md.NewConverter()
//
//	result, err := conv.Convert(ctx, dw2md.Input{
//	    Wikitext: "====== Title ======\n**bold** //italic//",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Title+".md", []byte(result.Markdown), 0644)
//
// The result contains the converted Markdown, the document title derived
// from the first top-level heading, and optionally an HTML rendering of
// the output (Input.HTMLPreview) for spot-checking in a browser.
//
// # Conversion Pipeline
//
// Each document passes through a fixed sequence:
//
//  1. Special blocks (code, note, mermaid, uml) are lifted out and
//     replaced with opaque placeholders so later passes cannot touch them
//  2. Headings and inline formatting (bold, italic, underline,
//     strikethrough) are rewritten
//  3. Tables are converted row by row with a line-oriented state machine
//  4. Media embeds and wiki links are rewritten
//  5. Plugin syntax (tags, diagrams, includes, wraps) is converted by an
//     ordered chain of independent stages
//  6. Preserved blocks are rendered back in (fenced code, callouts,
//     diagram fences) and the result is trimmed
//
// Conversion is pure and deterministic: the same input always yields the
// same output, with no state carried between documents. This makes it
// safe to convert many documents concurrently.
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool:
//
//	pool := dw2md.NewConverterPool(4)
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := dw2md.NewConverter(
//	    dw2md.WithImageWidth(480),
//	)
package dw2md
