package typer

import (
	"golang.org/x/sync/errgroup"

	"github.com/tim-hardcastle/welang/source/ast"
)

// Checks independent trees on up to the given number of workers. Trees share nothing,
// so a failure in one leaves the others alone: the result holds each tree's error, or
// nil, in the order of the roots.
func CheckForest(roots []*ast.Node, workers int) []error {
	errs := make([]error, len(roots))
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			errs[i] = Check(root)
			return nil
		})
	}
	g.Wait()
	return errs
}
