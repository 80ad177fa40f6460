package ops

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-fitpipe/pkg/fitpipe"
)

// References of the stock operations. Every operation takes its primary
// input through the "x" argument.
var (
	Identity = fitpipe.Ref{Namespace: "core", Name: "identity"}
	Add      = fitpipe.Ref{Namespace: "num", Name: "add"}
	Multiply = fitpipe.Ref{Namespace: "num", Name: "multiply"}
	Impute   = fitpipe.Ref{Namespace: "prep", Name: "impute"}
	Center   = fitpipe.Ref{Namespace: "prep", Name: "center"}
	Scale    = fitpipe.Ref{Namespace: "prep", Name: "scale"}
	Predict  = fitpipe.Ref{Namespace: "model", Name: "predict"}
)

// Register adds all stock operations to the registry and registers the
// fitted-model payload codec.
func Register(reg *fitpipe.Registry) {
	reg.Register(Identity, identity)
	reg.Register(Add, add)
	reg.Register(Multiply, multiply)
	reg.Register(Impute, impute)
	reg.Register(Center, center)
	reg.Register(Scale, scale)
	reg.Register(Predict, predict)

	fitpipe.RegisterPayload(linearModelPayloadType, decodeLinearModel)
}

func identity(_ context.Context, args fitpipe.Args) (any, error) {
	val, ok := args["x"]
	if !ok {
		return nil, errors.New("argument x must be set")
	}

	return val, nil
}

// add sums the operand onto x. x may be a scalar or a vector; the shape is
// preserved.
func add(_ context.Context, args fitpipe.Args) (any, error) {
	operand, err := floatArg(args, "operand")
	if err != nil {
		return nil, err
	}

	return mapNumeric(args, "x", func(v float64) float64 { return v + operand })
}

func multiply(_ context.Context, args fitpipe.Args) (any, error) {
	operand, err := floatArg(args, "operand")
	if err != nil {
		return nil, err
	}

	return mapNumeric(args, "x", func(v float64) float64 { return v * operand })
}

func mapNumeric(args fitpipe.Args, name string, fn func(float64) float64) (any, error) {
	switch val := args[name].(type) {
	case float64:
		return fn(val), nil
	case int64:
		return fn(float64(val)), nil
	case []float64:
		out := make([]float64, len(val))
		for i, v := range val {
			out[i] = fn(v)
		}
		return out, nil
	case nil:
		return nil, errors.Errorf("argument %q must be set", name)
	default:
		return nil, errors.Errorf("argument %q must be numeric, got %T", name, val)
	}
}

func floatArg(args fitpipe.Args, name string) (float64, error) {
	switch val := args[name].(type) {
	case float64:
		return val, nil
	case int64:
		return float64(val), nil
	case nil:
		return 0, errors.Errorf("argument %q must be set", name)
	default:
		return 0, errors.Errorf("argument %q must be a scalar, got %T", name, val)
	}
}

func vectorArg(args fitpipe.Args, name string) ([]float64, error) {
	val, ok := args[name]
	if !ok {
		return nil, errors.Errorf("argument %q must be set", name)
	}

	vec, ok := val.([]float64)
	if !ok {
		return nil, errors.Errorf("argument %q must be a vector, got %T", name, val)
	}

	return vec, nil
}
