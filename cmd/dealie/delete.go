package main

import (
	"fmt"

	"github.com/fwojciec/dealie"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return dealie.Errorf(dealie.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Promotions.DeleteCrawl(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", notFoundHint(err, c.ID))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted crawl %s\n", c.ID)
	return nil
}
