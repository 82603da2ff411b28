package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/fwojciec/annowiki"
	"github.com/fwojciec/annowiki/graph"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
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
	Categories string   `arg:"" help:"categories.tsv file written by the extractor"`
	Output     string   `arg:"" help:"Output file for shortest-path lines"`
	Starts     []string `arg:"" help:"One or more start categories"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("catdist"),
		kong.Description("Compute shortest paths to the subcategories of the given categories"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	in, err := os.Open(cli.Categories)
	if err != nil {
		return annowiki.Errorf(annowiki.ENOTFOUND, "open categories %s: %v", cli.Categories, err)
	}
	defer in.Close()

	g, err := graph.Read(in)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "loaded %d categories\n", g.Len())

	out, err := os.Create(cli.Output)
	if err != nil {
		return annowiki.Errorf(annowiki.EINTERNAL, "create output %s: %v", cli.Output, err)
	}

	for _, start := range cli.Starts {
		fmt.Fprintf(stdout, "finding shortest paths for subcategories of %s\n", start)
		dist, prev, err := g.ShortestPaths(start)
		if err != nil {
			_ = out.Close()
			return err
		}
		if err := g.WritePaths(out, start, dist, prev); err != nil {
			_ = out.Close()
			return err
		}
	}
	return out.Close()
}
