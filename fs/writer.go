// Package fs writes extracted text to files.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fwojciec/figtext"
	"gopkg.in/yaml.v3"
)

// Slug converts a layer name into a file-system friendly name.
// Example: "Login / Step 1" → "login-step-1"
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// ExportPath returns the relative file path of an export:
// <page>/<target>.txt, or <target>.txt when the page is unnamed.
func ExportPath(e *figtext.Export) string {
	name := Slug(e.Target) + ".txt"
	if e.Page == "" {
		return name
	}
	return filepath.Join(Slug(e.Page), name)
}

// frontmatter holds the names of an export; yaml.v3 quotes them as needed.
type frontmatter struct {
	Document string `yaml:"document,omitempty"`
	Page     string `yaml:"page,omitempty"`
	Target   string `yaml:"target"`
}

// FormatExport formats an export with YAML frontmatter.
func FormatExport(e *figtext.Export) (string, error) {
	head, err := yaml.Marshal(frontmatter{Document: e.Document, Page: e.Page, Target: e.Target})
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(head)
	if !e.ExtractedAt.IsZero() {
		b.WriteString("extracted: ")
		b.WriteString(e.ExtractedAt.Format("2006-01-02"))
		b.WriteString("\n")
	}
	b.WriteString("---\n\n")
	b.WriteString(e.Text)
	return b.String(), nil
}

// Ensure Writer implements figtext.ExportWriter at compile time.
var _ figtext.ExportWriter = (*Writer)(nil)

// Writer writes exports as text files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteExport writes an export to disk, replacing any previous file.
func (w *Writer) WriteExport(ctx context.Context, e *figtext.Export) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, ExportPath(e))

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatExport(e)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}
