package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	dw2md "github.com/mdupras/go-dw2md"
	"github.com/mdupras/go-dw2md/internal/fileutil"
)

// Sentinel errors for batch operations.
var (
	ErrReadPage        = errors.New("failed to read wiki page")
	ErrWriteMarkdown   = errors.New("failed to write markdown file")
	ErrOutputCollision = errors.New("output filename collision")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input dw2md.Input) (*dw2md.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*dw2md.Converter)(nil)

// ConversionResult holds the outcome of a single page conversion.
// Conversion and write failures are tracked separately: a write failure
// means the document converted fine but the vault is incomplete.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	ConvertErr error
	WriteErr   error
	Skipped    bool
	Duration   time.Duration
}

// Failed reports whether this page produced no valid output.
func (r ConversionResult) Failed() bool {
	return r.ConvertErr != nil || r.WriteErr != nil
}

// writeTracker detects two pages sanitizing to the same output path.
// First claim wins; later claims are reported as write errors.
type writeTracker struct {
	mu   sync.Mutex
	seen map[string]string // output path -> input path that claimed it
}

func newWriteTracker() *writeTracker {
	return &writeTracker{seen: make(map[string]string)}
}

// claim registers inputPath as the writer of outPath. Returns the
// earlier claimant and false when the path is already taken.
func (t *writeTracker) claim(outPath, inputPath string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prior, taken := t.seen[outPath]; taken {
		return prior, false
	}
	t.seen[outPath] = inputPath
	return "", true
}

// convertBatch processes pages concurrently using the converter pool.
func convertBatch(ctx context.Context, pool *dw2md.ConverterPool, pages []PageFile, params *conversionParams) []ConversionResult {
	if len(pages) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(pages) {
		concurrency = len(pages)
	}

	results := make([]ConversionResult, len(pages))
	writes := newWriteTracker()
	jobs := make(chan int, len(pages))
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv == nil {
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath:  pages[idx].InputPath,
						ConvertErr: errors.New("converter pool closed"),
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath:  pages[idx].InputPath,
						ConvertErr: ctx.Err(),
					}
					continue
				}
				results[idx] = convertPage(ctx, conv, pages[idx], params, writes)
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertPage converts one page and writes its outputs.
func convertPage(ctx context.Context, conv CLIConverter, page PageFile, params *conversionParams, writes *writeTracker) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: page.InputPath}
	defer func() {
		result.Duration = time.Since(start)
	}()

	content, err := os.ReadFile(page.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.ConvertErr = fmt.Errorf("%w: %v", ErrReadPage, err)
		return result
	}

	convResult, err := conv.Convert(ctx, dw2md.Input{
		Wikitext:    string(content),
		SourceDir:   filepath.Dir(page.InputPath),
		HTMLPreview: params.htmlPreview,
	})
	if err != nil {
		result.ConvertErr = err
		return result
	}

	outPath := filepath.Join(page.OutputDir, convResult.Title+".md")
	result.OutputPath = outPath

	if prior, ok := writes.claim(outPath, page.InputPath); !ok {
		result.WriteErr = fmt.Errorf("%w: %s already written from %s", ErrOutputCollision, outPath, prior)
		return result
	}

	written, err := fileutil.WriteFileIfChanged(outPath, []byte(convResult.Markdown))
	if err != nil {
		result.WriteErr = fmt.Errorf("%w: %v", ErrWriteMarkdown, err)
		return result
	}
	result.Skipped = !written

	if params.htmlPreview && convResult.HTML != nil {
		htmlPath := filepath.Join(page.OutputDir, convResult.Title+".html")
		if _, err := fileutil.WriteFileIfChanged(htmlPath, convResult.HTML); err != nil {
			result.WriteErr = fmt.Errorf("%w: %v", ErrWriteMarkdown, err)
		}
	}
	return result
}

// ResultSummary tallies batch outcomes.
type ResultSummary struct {
	Converted     int
	Skipped       int
	ConvertErrors int
	WriteErrors   int
}

// Failed returns the total number of failed pages.
func (s ResultSummary) Failed() int {
	return s.ConvertErrors + s.WriteErrors
}

// countResults tallies the batch.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.ConvertErr != nil:
			summary.ConvertErrors++
		case r.WriteErr != nil:
			summary.WriteErrors++
		case r.Skipped:
			summary.Skipped++
		default:
			summary.Converted++
		}
	}
	return summary
}
