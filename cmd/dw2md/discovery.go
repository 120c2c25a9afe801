package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdupras/go-dw2md/internal/sanitize"
)

// Sentinel errors for discovery.
var (
	ErrNoSourceDir      = errors.New("no source directory specified")
	ErrNoOutputDir      = errors.New("no output directory specified")
	ErrSourceDirMissing = errors.New("source directory not found")
	ErrPagesDirMissing  = errors.New("source has no pages directory")
)

// PageFile is one wiki page scheduled for conversion. The output
// filename is not known until conversion derives the title, so only the
// directory is resolved here.
type PageFile struct {
	InputPath string
	OutputDir string
}

// discoverPages walks sourceDir/pages for .txt files. Namespace
// subdirectories map to sanitized vault subdirectories. A source
// without pages/ is the one unrecoverable input error.
func discoverPages(sourceDir, outputDir string) ([]PageFile, error) {
	info, err := os.Stat(sourceDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceDirMissing, sourceDir)
	}

	pagesRoot := filepath.Join(sourceDir, "pages")
	info, err = os.Stat(pagesRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrPagesDirMissing, pagesRoot)
	}

	var pages []PageFile
	err = filepath.WalkDir(pagesRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}

		rel, err := filepath.Rel(pagesRoot, path)
		if err != nil {
			return err
		}
		pages = append(pages, PageFile{
			InputPath: path,
			OutputDir: namespaceOutputDir(outputDir, filepath.Dir(rel)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking pages directory: %w", err)
	}
	return pages, nil
}

// namespaceOutputDir maps a namespace path under pages/ to a vault
// subdirectory, sanitizing each segment independently.
func namespaceOutputDir(outputDir, relDir string) string {
	if relDir == "." {
		return outputDir
	}
	parts := strings.Split(relDir, string(filepath.Separator))
	safe := make([]string, 0, len(parts))
	for _, p := range parts {
		safe = append(safe, sanitize.Filename(p))
	}
	return filepath.Join(append([]string{outputDir}, safe...)...)
}
