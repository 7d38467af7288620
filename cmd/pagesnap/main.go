package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagesnap"
	"github.com/fwojciec/pagesnap/fs"
	"github.com/fwojciec/pagesnap/goquery"
	snaphttp "github.com/fwojciec/pagesnap/http"
	"github.com/fwojciec/pagesnap/mirror"
	snapslog "github.com/fwojciec/pagesnap/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()
	m.Stdin = os.Stdin

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin answers interactive prompts when URL or output directory
	// are not given as arguments. Nil disables prompting.
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagesnap"),
		kong.Description("Save a web page with its images, stylesheets and scripts for offline viewing"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(yamlConfig),
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

	// Missing inputs are asked for, as in an interactive session.
	if cli.URL == "" || cli.Output == "" {
		if m.Stdin == nil {
			_, _ = parser.Parse([]string{"--help"})
			return fmt.Errorf("url and output directory are required")
		}
		if err := prompt(cli, m.Stdin, stdout); err != nil {
			return err
		}
	}

	proxy, err := snaphttp.ParseProxy(cli.Proxy)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	timeout := cli.Timeout
	if timeout <= 0 {
		timeout = snaphttp.DefaultFetchTimeout
	}

	// Wire dependencies
	var fetcher pagesnap.Fetcher = snaphttp.NewFetcher(
		snaphttp.WithTimeout(timeout),
		snaphttp.WithProxy(proxy),
	)
	var store pagesnap.Store = fs.NewStore(cli.Output)
	if cli.Verbose {
		fetcher = snapslog.NewLoggingFetcher(fetcher, logger)
		store = snapslog.NewLoggingStore(store, logger)
	}

	downloader := &mirror.Downloader{
		Fetcher:     fetcher,
		Parser:      goquery.NewParser(),
		Store:       store,
		Logger:      logger,
		Concurrency: cli.Concurrency,
	}
	if cli.Rate > 0 {
		downloader.RateLimiter = mirror.NewHostLimiter(cli.Rate)
	}

	path, result, err := downloader.Download(ctx, cli.URL)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Saved %d resources (%d failed, %d skipped)\n", result.Saved, result.Failed, result.Skipped)
	fmt.Fprintf(stdout, "Saved to %s\n", path)
	return nil
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL         string          `arg:"" optional:"" help:"URL of the page to save"`
	Output      string          `arg:"" optional:"" help:"Output directory (created if missing, reused if present)"`
	Proxy       string          `short:"x" env:"PAGESNAP_PROXY" help:"Forward proxy for http and https requests, e.g. http://127.0.0.1:7890 or socks5://127.0.0.1:1080"`
	Timeout     time.Duration   `short:"t" default:"30s" help:"Timeout per request"`
	Concurrency int             `short:"c" default:"1" help:"Concurrent resource fetches"`
	Rate        float64         `default:"0" help:"Requests per second per host (0 for no limit)"`
	Verbose     bool            `short:"v" help:"Log every request and file write"`
	Config      kong.ConfigFlag `help:"YAML file with flag defaults"`
}
