package main

import (
	"fmt"

	"github.com/fwojciec/figtext"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	filter := figtext.DocumentFilter{Limit: c.Limit}
	if c.Name != "" {
		filter.Name = &c.Name
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents imported. Use 'figtext import <file>' to add one.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Documents (%d total):\n\n", len(docs))
	for i, doc := range docs {
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s%s", i+1, doc.Name, storePrefix, doc.ID)
		if doc.Source != "" {
			fmt.Fprintf(deps.Stdout, "  (%s)", doc.Source)
		}
		fmt.Fprintln(deps.Stdout)
	}

	return nil
}
