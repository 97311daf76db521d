// Package main is the entry point for the blockmark editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/tidwall/pretty"
	"golang.org/x/term"

	"github.com/dshills/blockmark/internal/app"
	"github.com/dshills/blockmark/internal/config"
	"github.com/dshills/blockmark/internal/engine/history"
	"github.com/dshills/blockmark/internal/logging"
	"github.com/dshills/blockmark/internal/renderer"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	command    string
	args       []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	switch opts.command {
	case "split":
		err = runSplit(cfg, opts.args, os.Stdout)
	case "render":
		err = runRender(cfg, opts.args, os.Stdout)
	case "history":
		err = runHistory(cfg, opts.args, os.Stdout)
	default:
		err = runInteractive(cfg, opts.args)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "blockmark - block-based markup editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: blockmark [options] [command] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  edit       Edit a document interactively (default)\n")
		fmt.Fprintf(os.Stderr, "  split      Print the blocks of a document\n")
		fmt.Fprintf(os.Stderr, "  render     Print the HTML of a document\n")
		fmt.Fprintf(os.Stderr, "  history    Print the stored undo history\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  blockmark notes.md           Edit a file\n")
		fmt.Fprintf(os.Stderr, "  cat notes.md | blockmark     Edit piped markup\n")
		fmt.Fprintf(os.Stderr, "  blockmark render notes.md    Print HTML\n")
		fmt.Fprintf(os.Stderr, "  blockmark history notes.md   Show the history of a file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("blockmark %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		if _, ok := logging.ParseLevel(opts.logLevel); !ok {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
			os.Exit(1)
		}
	}

	args := flag.Args()
	opts.command = "edit"
	if len(args) > 0 {
		switch args[0] {
		case "edit", "split", "render", "history":
			opts.command, args = args[0], args[1:]
		}
	}
	opts.args = args
	return opts
}

func loadConfig(opts options) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.Find(config.DefaultDir())
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	return cfg, nil
}

// readInput reads the document named by args, or stdin when it is not a
// terminal.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no input: pass a file or pipe markup on stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func runSplit(cfg *config.Config, args []string, w io.Writer) error {
	markup, err := readInput(args)
	if err != nil {
		return err
	}
	r, err := cfg.NewRenderer()
	if err != nil {
		return err
	}
	for i, block := range renderer.Split(r, markup) {
		fmt.Fprintf(w, "--- block %d ---\n%s\n", i, block)
	}
	return nil
}

func runRender(cfg *config.Config, args []string, w io.Writer) error {
	markup, err := readInput(args)
	if err != nil {
		return err
	}
	r, err := cfg.NewRenderer()
	if err != nil {
		return err
	}
	html, err := r.Render(markup)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, html)
	return err
}

// runHistory prints the record kept for a file, or lists the stored keys
// when no file is given.
func runHistory(cfg *config.Config, args []string, w io.Writer) error {
	if cfg.History.Backend != config.BackendBolt {
		return errors.New("history is only stored with the bolt backend")
	}
	kv, err := history.OpenBolt(cfg.History.Path)
	if err != nil {
		return err
	}
	defer kv.Close()

	if len(args) == 0 {
		keys, err := kv.Keys()
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(w, k)
		}
		return nil
	}

	key := args[0]
	if abs, err := filepath.Abs(key); err == nil {
		if _, statErr := os.Stat(abs); statErr == nil {
			key = abs
		}
	}
	data, err := kv.Get(key)
	if err != nil {
		return err
	}
	if _, err := history.DecodeRecord(data); err != nil {
		return err
	}

	out := pretty.Pretty(data)
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		out = pretty.Color(out, nil)
	}
	_, err = w.Write(out)
	return err
}

func runInteractive(cfg *config.Config, args []string) error {
	opts := app.Options{Config: cfg}
	if len(args) > 0 {
		opts.File = args[0]
	} else if !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		opts.Markup = string(data)
	}

	application, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}

	h, err := application.NewHost(screen)
	if err != nil {
		return err
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		h.Stop()
	}()

	return application.RunHost(h)
}
