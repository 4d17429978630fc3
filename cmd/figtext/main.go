package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/figtext"
	"github.com/fwojciec/figtext/etree"
	"github.com/fwojciec/figtext/extract"
	"github.com/fwojciec/figtext/figma"
	"github.com/fwojciec/figtext/fs"
	"github.com/fwojciec/figtext/goquery"
	figslog "github.com/fwojciec/figtext/slog"
	"github.com/fwojciec/figtext/sqlite"
	"github.com/fwojciec/figtext/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Stdin feeds the serve command.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService figtext.DocumentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("figtext"),
		kong.Description("Extract visible text from design documents"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'figtext --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.Config != "" {
		deps.Config, err = yaml.LoadConfig(cli.Config)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if deps.Config.Database != "" && os.Getenv("FIGTEXT_DB") == "" {
			m.DBPath = deps.Config.Database
		}
	}

	deps.Loader = &Loader{
		Decoders: map[string]figtext.DocumentDecoder{
			".json": figma.NewDecoder(),
			".svg":  etree.NewDecoder(),
			".html": goquery.NewDecoder(),
			".htm":  goquery.NewDecoder(),
		},
	}
	deps.NewExtractor = func(r figtext.ComponentResolver) figtext.Extractor {
		resolver := figslog.NewLoggingComponentResolver(r, deps.Logger)
		return figslog.NewLoggingExtractor(extract.NewExtractor(resolver), deps.Logger)
	}
	deps.NewExportWriter = func(dir string) figtext.ExportWriter {
		return fs.NewWriter(dir)
	}

	if needsStore(kongCtx.Command(), cli) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set FIGTEXT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.DocumentService = figslog.NewLoggingDocumentService(sqlite.NewDocumentService(m.DB), deps.Logger)
		deps.Documents = m.DocumentService
		deps.Loader.Documents = m.DocumentService
		deps.Loader.StoreResolver = func(id string) figtext.ComponentResolver {
			return sqlite.NewComponentResolver(m.DB, id)
		}
	}

	return kongCtx.Run(deps)
}

// needsStore reports whether the parsed command reads or writes the
// document store.
func needsStore(command string, cli *CLI) bool {
	switch command {
	case "import <file>", "docs", "delete <id>":
		return true
	case "extract <source>":
		return isStored(cli.Extract.Source)
	case "page <source>":
		return isStored(cli.Page.Source)
	case "serve <source>":
		return isStored(cli.Serve.Source)
	}
	return false
}

func isStored(source string) bool {
	return strings.HasPrefix(source, storePrefix)
}

func defaultDBPath() string {
	if path := os.Getenv("FIGTEXT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "figtext.db"
	}
	dir := filepath.Join(home, ".figtext")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "figtext.db")
}
