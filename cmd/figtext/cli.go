package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/figtext"
	"github.com/fwojciec/figtext/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *yaml.Config
	Documents figtext.DocumentService
	Loader    *Loader

	// NewExtractor builds an extractor over the given component resolver.
	NewExtractor func(r figtext.ComponentResolver) figtext.Extractor

	// NewExportWriter builds a writer for exports under dir.
	NewExportWriter func(dir string) figtext.ExportWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" help:"Path to a YAML or JSON config file"`
	Verbose bool   `short:"v" help:"Log debug output to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract text from named frames or groups"`
	Page    PageCmd    `cmd:"" help:"Extract text from a whole page"`
	Import  ImportCmd  `cmd:"" help:"Import a document into the local store"`
	Docs    DocsCmd    `cmd:"" help:"List imported documents"`
	Delete  DeleteCmd  `cmd:"" help:"Delete an imported document"`
	Serve   ServeCmd   `cmd:"" help:"Answer host requests as JSON lines on stdin/stdout"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Source         string   `arg:"" help:"Document file (.json, .svg, .html) or db:<id>"`
	Frames         []string `short:"f" name:"frame" required:"" help:"Target frame or group name (repeatable)"`
	SkipComponents []string `short:"s" name:"skip-component" help:"Skip instances of this component (repeatable)"`
	Exclude        []string `short:"x" name:"exclude" help:"Skip layers with this exact name (repeatable)"`
	ComponentMatch string   `name:"component-match" help:"Component exclusion mode: main-component or nearest-ancestor"`
	Page           string   `short:"p" help:"Page name (defaults to the first page)"`
	Out            string   `short:"o" help:"Write one text file per frame into this directory instead of stdout"`
}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	Source            string   `arg:"" help:"Document file (.json, .svg, .html) or db:<id>"`
	ExcludeComponents []string `short:"s" name:"exclude-component" help:"Skip instances of this component (repeatable)"`
	ExcludeSections   []string `short:"e" name:"exclude-section" help:"Skip layers whose name starts with this prefix (repeatable)"`
	Exclude           []string `short:"x" name:"exclude" help:"Skip layers with this exact name (repeatable)"`
	ComponentMatch    string   `name:"component-match" help:"Component exclusion mode: main-component or nearest-ancestor"`
	Page              string   `short:"p" help:"Page name (defaults to the first page)"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File string `arg:"" help:"Document file (.json, .svg, .html)"`
	Name string `short:"n" help:"Override the document name"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Name  string `short:"n" help:"Only list documents with this name"`
	Limit int    `short:"l" help:"Maximum number of documents to list"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Document ID"`
	Force bool   `help:"Confirm deletion"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Source string `arg:"" help:"Document file (.json, .svg, .html) or db:<id>"`
}
