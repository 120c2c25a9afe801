package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	dw2md "github.com/mdupras/go-dw2md"
)

func testPool(t *testing.T) *dw2md.ConverterPool {
	t.Helper()
	pool := dw2md.NewConverterPool(2)
	t.Cleanup(pool.Close)
	return pool
}

func TestConvertBatchWritesVault(t *testing.T) {
	root := makeWiki(t, map[string]string{
		"start.txt":    "====== Start Page ======\nhello **world**",
		"ns/guide.txt": "====== Guide ======\nsee [[start page]]",
	})
	vault := t.TempDir()

	pages, err := discoverPages(root, vault)
	if err != nil {
		t.Fatal(err)
	}

	results := convertBatch(context.Background(), testPool(t), pages, &conversionParams{})

	summary := countResults(results)
	if summary.Converted != 2 || summary.Failed() != 0 {
		t.Fatalf("summary = %+v, want 2 converted", summary)
	}

	got, err := os.ReadFile(filepath.Join(vault, "Start-Page.md"))
	if err != nil {
		t.Fatalf("output note missing: %v", err)
	}
	if !strings.Contains(string(got), "# Start Page") {
		t.Errorf("note content = %q, want heading", got)
	}
	if _, err := os.Stat(filepath.Join(vault, "ns", "Guide.md")); err != nil {
		t.Errorf("namespaced note missing: %v", err)
	}
}

func TestConvertBatchSkipsUnchanged(t *testing.T) {
	root := makeWiki(t, map[string]string{
		"start.txt": "====== Start ======\ncontent",
	})
	vault := t.TempDir()

	pages, err := discoverPages(root, vault)
	if err != nil {
		t.Fatal(err)
	}

	first := countResults(convertBatch(context.Background(), testPool(t), pages, &conversionParams{}))
	if first.Converted != 1 {
		t.Fatalf("first run summary = %+v, want 1 converted", first)
	}

	second := countResults(convertBatch(context.Background(), testPool(t), pages, &conversionParams{}))
	if second.Skipped != 1 || second.Converted != 0 {
		t.Errorf("second run summary = %+v, want 1 skipped", second)
	}
}

func TestConvertBatchReportsCollision(t *testing.T) {
	root := makeWiki(t, map[string]string{
		"a.txt": "====== Same Title ======\nfrom a",
		"b.txt": "====== Same Title ======\nfrom b",
	})
	vault := t.TempDir()

	pages, err := discoverPages(root, vault)
	if err != nil {
		t.Fatal(err)
	}

	results := convertBatch(context.Background(), testPool(t), pages, &conversionParams{})

	summary := countResults(results)
	if summary.WriteErrors != 1 {
		t.Fatalf("summary = %+v, want exactly 1 write error", summary)
	}
	var collision bool
	for _, r := range results {
		if errors.Is(r.WriteErr, ErrOutputCollision) {
			collision = true
		}
	}
	if !collision {
		t.Error("expected an ErrOutputCollision result")
	}
}

func TestConvertBatchEmptyPageFails(t *testing.T) {
	root := makeWiki(t, map[string]string{
		"empty.txt": "   \n",
		"ok.txt":    "====== OK ======\ntext",
	})
	vault := t.TempDir()

	pages, err := discoverPages(root, vault)
	if err != nil {
		t.Fatal(err)
	}

	results := convertBatch(context.Background(), testPool(t), pages, &conversionParams{})

	summary := countResults(results)
	if summary.ConvertErrors != 1 || summary.Converted != 1 {
		t.Errorf("summary = %+v, want 1 error and 1 converted", summary)
	}
	for _, r := range results {
		if strings.HasSuffix(r.InputPath, "empty.txt") && !errors.Is(r.ConvertErr, dw2md.ErrEmptyDocument) {
			t.Errorf("empty.txt error = %v, want ErrEmptyDocument", r.ConvertErr)
		}
	}
}

func TestConvertBatchHTMLPreview(t *testing.T) {
	root := makeWiki(t, map[string]string{
		"start.txt": "====== Start ======\ntext",
	})
	vault := t.TempDir()

	pages, err := discoverPages(root, vault)
	if err != nil {
		t.Fatal(err)
	}

	results := convertBatch(context.Background(), testPool(t), pages, &conversionParams{htmlPreview: true})
	if summary := countResults(results); summary.Failed() != 0 {
		t.Fatalf("summary = %+v, want no failures", summary)
	}

	got, err := os.ReadFile(filepath.Join(vault, "Start.html"))
	if err != nil {
		t.Fatalf("HTML preview missing: %v", err)
	}
	if !strings.Contains(string(got), "<h1") {
		t.Errorf("preview = %q, want an h1 element", got)
	}
}

func TestPrintResults(t *testing.T) {
	results := []ConversionResult{
		{InputPath: "a.txt", OutputPath: "A.md"},
		{InputPath: "b.txt", OutputPath: "B.md", Skipped: true},
		{InputPath: "c.txt", ConvertErr: errors.New("boom")},
	}

	var stdout, stderr bytes.Buffer
	env := &Environment{Stdout: &stdout, Stderr: &stderr}

	summary := printResults(results, false, false, env)
	if summary.Converted != 1 || summary.Skipped != 1 || summary.Failed() != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	if !strings.Contains(stdout.String(), "Created A.md") {
		t.Errorf("stdout = %q, want created line", stdout.String())
	}
	if !strings.Contains(stderr.String(), "c.txt") || !strings.Contains(stderr.String(), "boom") {
		t.Errorf("stderr = %q, want failure line", stderr.String())
	}
	if !strings.Contains(stderr.String(), "1 converted, 1 unchanged, 1 failed") {
		t.Errorf("stderr = %q, want summary line", stderr.String())
	}
}

func TestPrintResultsQuiet(t *testing.T) {
	results := []ConversionResult{
		{InputPath: "a.txt", OutputPath: "A.md"},
		{InputPath: "b.txt", OutputPath: "B.md"},
	}

	var stdout, stderr bytes.Buffer
	env := &Environment{Stdout: &stdout, Stderr: &stderr}

	printResults(results, true, false, env)
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want silence in quiet mode", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want silence without failures", stderr.String())
	}
}
