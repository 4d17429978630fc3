package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/figtext"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	if strings.HasPrefix(c.File, storePrefix) {
		fmt.Fprintf(deps.Stderr, "error: %q is already stored\n", c.File)
		return figtext.Errorf(figtext.EINVALID, "%q is already stored", c.File)
	}

	doc, err := deps.Loader.LoadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
		return err
	}
	if c.Name != "" {
		doc.Name = c.Name
	}

	if err := deps.Documents.CreateDocument(deps.Ctx, doc); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
		return err
	}

	var nodes int
	for _, p := range doc.Pages {
		p.Walk(func(*figtext.Node) bool {
			nodes++
			return true
		})
	}
	fmt.Fprintf(deps.Stdout, "Imported %q (%d pages, %d nodes)\n", doc.Name, len(doc.Pages), nodes)
	fmt.Fprintf(deps.Stdout, "Use it as %s%s\n", storePrefix, doc.ID)
	return nil
}
