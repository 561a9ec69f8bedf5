package translate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-mteval/corpus"
)

// Corpus translates every source sentence of c through the pool and returns
// a copy of c with the hypotheses filled in, index-aligned with the sources.
// At most pool.Size() translations run at once. The first failure cancels
// the rest.
func Corpus(ctx context.Context, pool *Pool, c corpus.Corpus) (corpus.Corpus, error) {
	if err := c.Validate(); err != nil {
		return corpus.Corpus{}, err
	}

	sources := c.Sources()
	hyps := make([]string, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(pool.Size())

	for i, src := range sources {
		g.Go(func() error {
			session, err := pool.Acquire(ctx)
			if err != nil {
				return err
			}
			defer pool.Release(session)

			out, err := session.Translate(ctx, src, c.Direction)
			if err != nil {
				return fmt.Errorf("%s sentence %d: %w", c.Direction, i, err)
			}
			hyps[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return corpus.Corpus{}, err
	}

	return c.WithHypotheses(hyps)
}
