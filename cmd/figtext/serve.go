package main

import (
	"fmt"

	"github.com/fwojciec/figtext"
	"github.com/fwojciec/figtext/session"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	doc, resolver, err := deps.Loader.Load(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
		return err
	}

	s := session.New(deps.NewExtractor(resolver), doc, deps.Logger)
	if s.TargetOptions, err = deps.Config.TargetOptions(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
		return err
	}
	if s.PageOptions, err = deps.Config.PageOptions(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", figtext.ErrorMessage(err))
		return err
	}

	return s.Serve(deps.Ctx, deps.Stdin, deps.Stdout)
}
