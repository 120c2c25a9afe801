package preview

import (
	"bytes"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths parses an HTML fragment and rewrites relative
// img src and a href attributes to absolute file:// URLs under baseDir.
// Absolute URLs, anchors, and paths escaping baseDir are left alone.
func RewriteRelativePaths(fragment []byte, baseDir string) ([]byte, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving base directory: %w", err)
	}

	nodes, err := html.ParseFragment(bytes.NewReader(fragment), bodyContext())
	if err != nil {
		return nil, fmt.Errorf("parsing HTML fragment: %w", err)
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		rewriteNode(n, absBase)
		if err := html.Render(&buf, n); err != nil {
			return nil, fmt.Errorf("rendering HTML fragment: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func bodyContext() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
}

func rewriteNode(n *html.Node, absBase string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "img":
			rewriteAttr(n, "src", absBase)
		case "a":
			rewriteAttr(n, "href", absBase)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, absBase)
	}
}

func rewriteAttr(n *html.Node, key, absBase string) {
	for i, attr := range n.Attr {
		if attr.Key != key {
			continue
		}
		if rewritten, ok := toFileURL(attr.Val, absBase); ok {
			n.Attr[i].Val = rewritten
		}
		return
	}
}

// toFileURL converts a relative path to a file:// URL under absBase.
// Targets that resolve outside absBase are rejected to keep the preview
// from reaching into unrelated directories.
func toFileURL(val, absBase string) (string, bool) {
	if val == "" || strings.HasPrefix(val, "#") {
		return "", false
	}
	if u, err := url.Parse(val); err != nil || u.Scheme != "" {
		return "", false
	}
	if filepath.IsAbs(val) {
		return "", false
	}
	joined := filepath.Join(absBase, filepath.FromSlash(val))
	rel, err := filepath.Rel(absBase, joined)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return "file://" + filepath.ToSlash(joined), true
}
