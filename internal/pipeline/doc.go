// Package pipeline implements the DokuWiki-to-Markdown transformation
// passes: block preservation and restoration, heading and inline
// formatting, table conversion, link and media rewriting, and the
// plugin-syntax chain.
//
// Every pass is a pure function of the document text. Passes run in a
// fixed order decided by the orchestrator in the root package; the
// passes themselves carry no state between documents.
package pipeline
