package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/fwojciec/figtext"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	opts, err := deps.Config.TargetOptions()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
		return err
	}
	opts.Exclusions.Components = slices.Concat(opts.Exclusions.Components, c.SkipComponents)
	opts.Exclusions.Names = slices.Concat(opts.Exclusions.Names, c.Exclude)
	if c.ComponentMatch != "" {
		opts.Exclusions.ComponentMatch = figtext.ComponentMatch(c.ComponentMatch)
	}

	doc, resolver, err := deps.Loader.Load(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
		return err
	}
	page, err := doc.Page(c.Page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
		return err
	}

	ex := deps.NewExtractor(resolver)
	if c.Out != "" {
		return c.export(deps, ex, doc, page, opts)
	}

	text, err := ex.ExtractTargets(deps.Ctx, page, c.Frames, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, text)
	return nil
}

// export writes each frame to its own file. Missing frames are reported
// and skipped; it fails only when none of them was found.
func (c *ExtractCmd) export(deps *Dependencies, ex figtext.Extractor, doc *figtext.Document, page *figtext.Node, opts figtext.Options) error {
	w := deps.NewExportWriter(c.Out)
	now := time.Now().UTC()

	var written int
	for _, name := range c.Frames {
		text, err := ex.ExtractTargets(deps.Ctx, page, []string{name}, opts)
		if figtext.ErrorCode(err) == figtext.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "warning: frame %q not found\n", name)
			continue
		}
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
			return err
		}

		e := &figtext.Export{
			Document:    doc.Name,
			Page:        page.Name,
			Target:      name,
			Text:        text,
			ExtractedAt: now,
		}
		if err := w.WriteExport(deps.Ctx, e); err != nil {
			fmt.Fprintf(deps.Stderr, "error: failed to write %q: %v\n", name, err)
			return err
		}
		written++
	}

	if written == 0 {
		err := figtext.Errorf(figtext.ENOTFOUND, "%s", figtext.NotFoundMessage(len(c.Frames)))
		fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d of %d frames to %s\n", written, len(c.Frames), c.Out)
	return nil
}
