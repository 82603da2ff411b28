package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/fwojciec/annowiki"
	"github.com/fwojciec/annowiki/extract"
	"github.com/fwojciec/annowiki/fs"
	annoslog "github.com/fwojciec/annowiki/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Compress         bool   `short:"c" help:"Compress shard files with bzip2"`
	Bytes            string `short:"b" default:"500K" help:"Target shard size; K/M suffixes allowed, 200K minimum"`
	Output           string `short:"o" default:"." help:"Output directory"`
	Workers          int    `short:"w" default:"4" help:"Parallel extraction workers"`
	Prefix           string `short:"p" default:"${default_prefix}" help:"Base URL prefix for canonical article URLs"`
	KeepAnchors      bool   `short:"k" help:"Keep annotations whose target contains a fragment"`
	DropLists        bool   `help:"Drop bulleted list lines"`
	DropEnumerations bool   `help:"Drop numbered list lines"`
	DropIndents      bool   `help:"Drop indented lines"`
	DropTables       bool   `help:"Drop residual table delimiter lines"`
	Dedupe           bool   `help:"Skip pages whose URL was already written"`
	Config           string `help:"YAML extraction policy file; overrides the policy flags"`
	Verbose          bool   `short:"v" help:"Verbose logging"`
	Dump             string `arg:"" optional:"" help:"Dump file to read (default: stdin)"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("annowiki"),
		kong.Description("Extract annotated plain-text documents from a wiki dump"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"default_prefix": annowiki.DefaultURLPrefix},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	maxBytes, err := parseByteSize(cli.Bytes)
	if err != nil {
		return err
	}

	cfg, err := m.extractionConfig(cli)
	if err != nil {
		return err
	}

	extractor, err := annowiki.NewExtractor(cfg)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	sharded, err := fs.NewShardedWriter(cli.Output, maxBytes, cli.Compress)
	if err != nil {
		return err
	}
	writer := annoslog.NewLoggingWriter(sharded, logger)

	var dedupe *extract.Dedupe
	if cli.Dedupe {
		dedupe = extract.NewDedupe(dedupeExpectedPages, dedupeFalsePositiveRate)
	}

	input := stdin
	if cli.Dump != "" {
		f, err := os.Open(cli.Dump)
		if err != nil {
			return annowiki.Errorf(annowiki.ENOTFOUND, "open dump %s: %v", cli.Dump, err)
		}
		defer f.Close()
		input = f
	}

	runner := &extract.Runner{
		Extractor: extractor,
		Writer:    writer,
		Workers:   cli.Workers,
		Logger:    logger,
		Dedupe:    dedupe,
		Progress: func(ev extract.ProgressEvent) {
			fmt.Fprintf(stdout, "\rprocessed %d pages", ev.Pages)
		},
	}

	stats, runErr := runner.Run(ctx, input)

	// Flush already-open handles even when the run failed.
	if err := writer.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		fmt.Fprintf(stderr, "error: %s\n", annowiki.ErrorMessage(runErr))
		return runErr
	}

	fmt.Fprintf(stdout, "\rprocessed %d pages: %d articles, %d redirects, %d category pages, %d filtered, %d failed\n",
		stats.Pages, stats.Articles, stats.Redirects, stats.Categories, stats.Filtered, stats.Failed)
	fmt.Fprintf(stdout, "article checksum: %016x\n", sharded.Checksum())
	return nil
}

// Dedupe filter sizing; English-dump scale with a low false positive rate.
const (
	dedupeExpectedPages     = 20_000_000
	dedupeFalsePositiveRate = 1e-6
)

// extractionConfig builds the extraction policy from the policy flags, or from
// the YAML file when one is given.
func (m *Main) extractionConfig(cli *CLI) (annowiki.Config, error) {
	if cli.Config != "" {
		return annowiki.LoadConfig(cli.Config)
	}
	cfg := annowiki.Config{
		URLPrefix:        cli.Prefix,
		KeepAnchors:      cli.KeepAnchors,
		DropLists:        cli.DropLists,
		DropEnumerations: cli.DropEnumerations,
		DropIndents:      cli.DropIndents,
		DropTables:       cli.DropTables,
	}
	if err := cfg.Validate(); err != nil {
		return annowiki.Config{}, err
	}
	return cfg, nil
}
