package fitpipe

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ApplyEach applies the pipeline to every input of a batch and returns the
// outputs in input order. The pipeline is sealed first; each input gets its
// own Apply, so the per-input runs stay strictly sequential while the batch
// fans out up to the configured concurrency. The first error cancels the
// remaining runs and is returned wrapped with the input's index.
func ApplyEach(ctx context.Context, reg *Registry, p *Pipeline, inputs []any, opts ...BatchOption) ([]any, error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}
	if reg == nil {
		return nil, ErrRegistryMustBeSet
	}

	cfg := &batchConfig{concurrent: 1}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.concurrent < 1 {
		cfg.concurrent = 1
	}

	p.Seal()

	outputs := make([]any, len(inputs))

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(cfg.concurrent)

	for idx, input := range inputs {
		localIdx := idx
		localInput := input
		errGrp.Go(func() error {
			out, err := p.Apply(dCtx, reg, localInput)
			if err != nil {
				return errors.Wrapf(err, "input %d", localIdx)
			}
			outputs[localIdx] = out

			return nil
		})
	}

	err := errGrp.Wait()
	if err != nil {
		return nil, err
	}

	return outputs, nil
}
