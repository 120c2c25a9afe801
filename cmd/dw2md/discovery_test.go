package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func makeWiki(t *testing.T, pages map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range pages {
		path := filepath.Join(root, "pages", filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestDiscoverPages(t *testing.T) {
	root := makeWiki(t, map[string]string{
		"start.txt":        "====== Start ======",
		"ns/inner.txt":     "====== Inner ======",
		"ns/deep/leaf.txt": "====== Leaf ======",
		"notes.md":         "not a wiki page",
	})

	pages, err := discoverPages(root, "/vault")
	if err != nil {
		t.Fatalf("discoverPages() error = %v", err)
	}

	if len(pages) != 3 {
		t.Fatalf("found %d pages, want 3", len(pages))
	}

	byInput := make(map[string]string, len(pages))
	for _, p := range pages {
		rel, err := filepath.Rel(filepath.Join(root, "pages"), p.InputPath)
		if err != nil {
			t.Fatal(err)
		}
		byInput[filepath.ToSlash(rel)] = p.OutputDir
	}

	if got := byInput["start.txt"]; got != "/vault" {
		t.Errorf("start.txt OutputDir = %q, want /vault", got)
	}
	if got := byInput["ns/inner.txt"]; got != filepath.Join("/vault", "ns") {
		t.Errorf("ns/inner.txt OutputDir = %q, want /vault/ns", got)
	}
	if got := byInput["ns/deep/leaf.txt"]; got != filepath.Join("/vault", "ns", "deep") {
		t.Errorf("ns/deep/leaf.txt OutputDir = %q, want /vault/ns/deep", got)
	}
}

func TestDiscoverPagesSanitizesNamespaces(t *testing.T) {
	root := makeWiki(t, map[string]string{
		"bad ns name/page.txt": "====== P ======",
	})

	pages, err := discoverPages(root, "/vault")
	if err != nil {
		t.Fatalf("discoverPages() error = %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("found %d pages, want 1", len(pages))
	}
	if got := pages[0].OutputDir; got != filepath.Join("/vault", "bad-ns-name") {
		t.Errorf("OutputDir = %q, want sanitized namespace", got)
	}
}

func TestDiscoverPagesMissingSource(t *testing.T) {
	_, err := discoverPages(filepath.Join(t.TempDir(), "missing"), "/vault")
	if !errors.Is(err, ErrSourceDirMissing) {
		t.Errorf("discoverPages() error = %v, want ErrSourceDirMissing", err)
	}
}

func TestDiscoverPagesMissingPagesDir(t *testing.T) {
	_, err := discoverPages(t.TempDir(), "/vault")
	if !errors.Is(err, ErrPagesDirMissing) {
		t.Errorf("discoverPages() error = %v, want ErrPagesDirMissing", err)
	}
}

func TestDiscoverPagesEmptyPagesDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "pages"), 0o750); err != nil {
		t.Fatal(err)
	}

	pages, err := discoverPages(root, "/vault")
	if err != nil {
		t.Fatalf("discoverPages() error = %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("found %d pages, want 0", len(pages))
	}
}
