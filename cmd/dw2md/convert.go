package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	dw2md "github.com/mdupras/go-dw2md"
	"github.com/mdupras/go-dw2md/internal/config"
	"github.com/mdupras/go-dw2md/internal/fileutil"
)

// conversionParams groups the merged flag and config values the batch
// needs.
type conversionParams struct {
	sourceDir   string
	outputDir   string
	mediaDir    string
	workers     int
	imageWidth  int
	htmlPreview bool
	skipMedia   bool
}

// mergeParams resolves flags against configuration; explicit flags win.
func mergeParams(flags *convertFlags, positional []string, cfg *config.Config) (*conversionParams, error) {
	p := &conversionParams{
		sourceDir:   cfg.Source.Dir,
		outputDir:   cfg.Output.Dir,
		mediaDir:    cfg.Media.Dir,
		workers:     cfg.Convert.Workers,
		imageWidth:  cfg.Convert.ImageWidth,
		htmlPreview: cfg.Convert.HTMLPreview,
		skipMedia:   cfg.Media.Skip,
	}
	if len(positional) > 0 {
		p.sourceDir = positional[0]
	}
	if flags.output != "" {
		p.outputDir = flags.output
	}
	if flags.workers != 0 {
		p.workers = flags.workers
	}
	if flags.imageWidth != 0 {
		p.imageWidth = flags.imageWidth
	}
	if flags.htmlPreview {
		p.htmlPreview = true
	}
	if flags.skipMedia {
		p.skipMedia = true
	}

	if p.sourceDir == "" {
		return nil, ErrNoSourceDir
	}
	if p.outputDir == "" {
		return nil, ErrNoOutputDir
	}
	if p.imageWidth < 0 || p.imageWidth > dw2md.MaxImageWidth {
		return nil, fmt.Errorf("%w: %d", dw2md.ErrInvalidImageWidth, p.imageWidth)
	}
	if p.mediaDir == "" {
		p.mediaDir = "media"
	}
	return p, nil
}

// converterOptions maps merged params to library options.
func converterOptions(p *conversionParams) []dw2md.Option {
	var opts []dw2md.Option
	if p.imageWidth > 0 {
		opts = append(opts, dw2md.WithImageWidth(p.imageWidth))
	}
	return opts
}

// run executes the full migration: discover, convert, report, copy
// media. Returns the exit code and any fatal error.
func run(ctx context.Context, flags *convertFlags, positional []string, env *Environment) (int, error) {
	if flags.showVersion {
		fmt.Fprintln(env.Stdout, Version)
		return ExitSuccess, nil
	}

	cfg := config.DefaultConfig()
	if flags.configName != "" {
		loaded, err := config.LoadConfig(flags.configName)
		if err != nil {
			return exitCodeFor(err), fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	params, err := mergeParams(flags, positional, cfg)
	if err != nil {
		return exitCodeFor(err), err
	}

	pages, err := discoverPages(params.sourceDir, params.outputDir)
	if err != nil {
		return exitCodeFor(err), err
	}
	if len(pages) == 0 {
		fmt.Fprintln(env.Stderr, "no wiki pages found")
		return ExitSuccess, nil
	}

	poolSize := dw2md.ResolvePoolSize(params.workers)
	if flags.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d pages with %d workers\n", len(pages), poolSize)
	}
	pool := dw2md.NewConverterPool(poolSize, converterOptions(params)...)
	defer pool.Close()

	results := convertBatch(ctx, pool, pages, params)
	summary := printResults(results, flags.quiet, flags.verbose, env)

	if !params.skipMedia {
		copyMedia(params, flags.quiet, env)
	}

	if summary.Failed() > 0 {
		return ExitGeneral, nil
	}
	return ExitSuccess, nil
}

// copyMedia mirrors the media tree into the vault. A missing media
// directory is only worth a note: many wikis have no media at all.
func copyMedia(params *conversionParams, quiet bool, env *Environment) {
	src := filepath.Join(params.sourceDir, params.mediaDir)
	dst := filepath.Join(params.outputDir, params.mediaDir)

	err := fileutil.CopyMediaTree(src, dst)
	switch {
	case errors.Is(err, fileutil.ErrMediaSourceMissing):
		if !quiet {
			fmt.Fprintf(env.Stderr, "no media directory at %s, skipping media copy\n", src)
		}
	case err != nil:
		fmt.Fprintf(env.Stderr, "media copy failed: %v\n", err)
	case !quiet:
		fmt.Fprintf(env.Stdout, "Media copied to %s\n", dst)
	}
}

var failedLabel = color.New(color.FgRed, color.Bold).SprintFunc()

// printResults reports per-page outcomes and a summary line.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		switch {
		case r.ConvertErr != nil:
			fmt.Fprintf(env.Stderr, "%s %s: %v\n", failedLabel("FAILED"), r.InputPath, r.ConvertErr)
		case r.WriteErr != nil:
			fmt.Fprintf(env.Stderr, "%s %s: %v\n", failedLabel("FAILED"), r.InputPath, r.WriteErr)
		case quiet:
		case r.Skipped:
			if verbose {
				fmt.Fprintf(env.Stdout, "unchanged %s\n", r.OutputPath)
			}
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		line := fmt.Sprintf("\n%d converted, %d unchanged, %d failed\n",
			summary.Converted, summary.Skipped, summary.Failed())
		if summary.Failed() > 0 {
			fmt.Fprint(env.Stderr, failedLabel(line))
		} else {
			fmt.Fprint(env.Stdout, line)
		}
	}
	return summary
}
