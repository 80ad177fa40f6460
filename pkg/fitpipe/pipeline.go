package fitpipe

import (
	"context"
	"sync"
)

// Part is anything that contributes steps to a composition: an Operation or
// another Pipeline. Compose flattens its parts into one step sequence, which
// makes composition associative by construction.
type Part interface {
	parts() []*Operation
}

// Pipeline is an ordered sequence of operations. It starts in a building
// state where steps may be appended; the first Apply, or an explicit Seal,
// makes it immutable. A sealed pipeline is safe for concurrent use.
type Pipeline struct {
	mu     sync.Mutex
	ops    []*Operation
	sealed bool
}

// Compose builds a pipeline from operations and other pipelines, in order.
// It fails with ErrEmptyPipeline when the parts contribute no steps.
func Compose(parts ...Part) (*Pipeline, error) {
	pipe := &Pipeline{}

	for _, part := range parts {
		if part == nil {
			return nil, ErrPartMustBeSet
		}
		pipe.ops = append(pipe.ops, part.parts()...)
	}

	if len(pipe.ops) == 0 {
		return nil, ErrEmptyPipeline
	}

	return pipe, nil
}

// Append adds steps to a pipeline that is still building. It fails with
// ErrSealed once the pipeline has been sealed.
func (p *Pipeline) Append(ops ...*Operation) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sealed {
		return ErrSealed
	}
	for _, op := range ops {
		if op == nil {
			return ErrPartMustBeSet
		}
	}
	p.ops = append(p.ops, ops...)

	return nil
}

// Seal transitions the pipeline from building to sealed. It is idempotent;
// there is no way back.
func (p *Pipeline) Seal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sealed = true
}

// Sealed reports whether the pipeline has been sealed.
func (p *Pipeline) Sealed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sealed
}

// Len returns the number of steps.
func (p *Pipeline) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ops)
}

// Items returns the steps in construction order. The returned slice is a
// copy; the operations themselves are immutable.
func (p *Pipeline) Items() []*Operation {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]*Operation, len(p.ops))
	copy(items, p.ops)

	return items
}

// Apply seals the pipeline and threads the input through its steps in order:
// the output of each step becomes the slot value of the next. The final
// step's output is returned. An error raised by a step aborts the run and is
// wrapped as a StepError carrying the step's index and description; the
// remaining steps are not executed.
func (p *Pipeline) Apply(ctx context.Context, reg *Registry, input any) (any, error) {
	if reg == nil {
		return nil, ErrRegistryMustBeSet
	}

	p.Seal()

	if len(p.ops) == 0 {
		return nil, ErrEmptyPipeline
	}

	current := input
	for idx, op := range p.ops {
		out, err := op.Invoke(ctx, reg, current)
		if err != nil {
			return nil, &StepError{Index: idx, Description: op.Describe(), Err: err}
		}
		current = out
	}

	return current, nil
}

func (op *Operation) parts() []*Operation { return []*Operation{op} }

func (p *Pipeline) parts() []*Operation { return p.Items() }
