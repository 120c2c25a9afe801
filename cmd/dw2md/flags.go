package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// convertFlags holds all command-line flags.
type convertFlags struct {
	output      string
	configName  string
	workers     int
	imageWidth  int
	htmlPreview bool
	skipMedia   bool
	quiet       bool
	verbose     bool
	showVersion bool
}

// parseFlags parses the command line. Returns the flags and remaining
// positional arguments (the source directory, when given).
func parseFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("dw2md", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "vault output directory")
	fs.StringVarP(&f.configName, "config", "c", "", "config file name or path")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.IntVar(&f.imageWidth, "width", 0, "display width for image embeds (0 = default)")
	fs.BoolVar(&f.htmlPreview, "html", false, "write an HTML preview next to each note")
	fs.BoolVar(&f.skipMedia, "skip-media", false, "do not copy the media tree")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
	fs.BoolVar(&f.showVersion, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: dw2md [flags] <wiki-data-dir>

Converts a DokuWiki data directory (containing pages/ and media/) into
an Obsidian vault.

Flags:
  -o, --output DIR    vault output directory (required unless configured)
  -c, --config NAME   config file name or path
  -w, --workers N     parallel workers (0 = one per CPU)
      --width N       display width for image embeds
      --html          write an HTML preview next to each note
      --skip-media    do not copy the media tree
  -q, --quiet         only show errors
  -v, --verbose       show detailed timing
      --version       print version and exit
`)
}
