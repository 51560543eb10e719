package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Builder creates an independent world and its metrics for one seed.
type Builder func(seed int64) (*World, []Metric, error)

// Ensemble runs the same scene under consecutive seeds. Every run owns its
// World, so runs proceed in parallel without sharing state.
type Ensemble struct {
	build     Builder
	numRuns   int
	seedStart int64
}

func NewEnsemble(build Builder, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			w, metrics, err := e.build(e.seedStart + int64(idx))
			if err != nil {
				return err
			}

			s := New(w)
			for _, m := range metrics {
				s.AddMetric(m)
			}

			res, err := s.Run(ctx, cfg)
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
