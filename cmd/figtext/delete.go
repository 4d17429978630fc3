package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/figtext"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return figtext.Errorf(figtext.EINVALID, "use --force to confirm deletion")
	}

	id := strings.TrimPrefix(c.ID, storePrefix)
	if err := deps.Documents.DeleteDocument(deps.Ctx, id); err != nil {
		if figtext.ErrorCode(err) == figtext.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'figtext docs' to see imported documents.\n", id)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted document %s\n", id)
	return nil
}
