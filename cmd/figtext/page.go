package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/figtext"
)

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	opts, err := deps.Config.PageOptions()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
		return err
	}
	opts.Exclusions.Components = slices.Concat(opts.Exclusions.Components, c.ExcludeComponents)
	opts.Exclusions.SectionPrefixes = slices.Concat(opts.Exclusions.SectionPrefixes, c.ExcludeSections)
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

	text, err := deps.NewExtractor(resolver).ExtractPage(deps.Ctx, page, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, text)
	return nil
}
