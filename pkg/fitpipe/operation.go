package fitpipe

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Ref names an external operation target: a namespace qualifier plus an
// operation name. The pair must be resolvable through a Registry in every
// process that applies the pipeline.
type Ref struct {
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name"`
}

func (r Ref) String() string {
	if r.Namespace == "" {
		return r.Name
	}
	return r.Namespace + "." + r.Name
}

// Args is a bound-argument bundle: argument name to value. Supported value
// kinds are float64, int64, bool, string, []float64, []string and Payload.
// Plain ints are accepted and normalised to int64.
type Args map[string]any

// Operation is one pipeline step: a target reference, the name of the formal
// argument that receives the upstream value, and the arguments bound when the
// step was built. Operations are immutable after construction.
type Operation struct {
	Target Ref
	Slot   string
	args   Args
}

// NewOperation builds a step. The bound arguments are copied, so later
// mutation of the originals cannot change the operation. It fails with
// ErrInvalidBinding when the bundle defines the slot name, and with a
// CodecError when a value is of an unsupported kind.
func NewOperation(target Ref, slot string, args Args) (*Operation, error) {
	if target.Name == "" {
		return nil, errors.New("target name must be set")
	}
	if slot == "" {
		return nil, ErrSlotMustBeSet
	}
	if _, ok := args[slot]; ok {
		return nil, errors.Wrapf(ErrInvalidBinding, "slot %q", slot)
	}

	bound, err := copyArgs(args)
	if err != nil {
		return nil, errors.Wrapf(err, "operation %s", target)
	}

	return &Operation{Target: target, Slot: slot, args: bound}, nil
}

// Args returns a copy of the bound-argument bundle.
func (op *Operation) Args() Args {
	// The bundle was validated at construction, the copy cannot fail.
	bound, _ := copyArgs(op.args)
	return bound
}

// Invoke resolves the target in the given registry, merges the slot value
// into the bound arguments and calls the target. The result is returned
// unchanged.
func (op *Operation) Invoke(ctx context.Context, reg *Registry, input any) (any, error) {
	if reg == nil {
		return nil, ErrRegistryMustBeSet
	}

	fn, ok := reg.Resolve(op.Target)
	if !ok {
		return nil, &UnresolvedError{Ref: op.Target}
	}

	// Each call gets its own copy so a callable mutating its arguments
	// cannot leak state into later calls.
	full := op.Args()
	full[op.Slot] = input

	return fn(ctx, full)
}

// Describe renders the operation for inspection: qualified target name, slot
// name and the sorted bound-argument names. Values are deliberately omitted.
func (op *Operation) Describe() string {
	names := make([]string, 0, len(op.args))
	for name := range op.args {
		names = append(names, name)
	}
	sort.Strings(names)

	return fmt.Sprintf("%s(slot=%s, args=[%s])", op.Target, op.Slot, strings.Join(names, " "))
}

func copyArgs(args Args) (Args, error) {
	bound := make(Args, len(args))

	for name, value := range args {
		switch val := value.(type) {
		case float64, int64, bool, string:
			bound[name] = val
		case int:
			bound[name] = int64(val)
		case []float64:
			cpy := make([]float64, len(val))
			copy(cpy, val)
			bound[name] = cpy
		case []string:
			cpy := make([]string, len(val))
			copy(cpy, val)
			bound[name] = cpy
		case Payload:
			// Payloads are exclusively owned by the operation once bound.
			bound[name] = val
		default:
			return nil, codecErrorf("argument %q has unsupported type %T", name, value)
		}
	}

	return bound, nil
}
