package ops

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/askiada/go-fitpipe/pkg/fitpipe"
)

// impute replaces NaN entries of the x vector with the bound replacement
// value.
func impute(_ context.Context, args fitpipe.Args) (any, error) {
	vec, err := vectorArg(args, "x")
	if err != nil {
		return nil, err
	}
	replacement, err := floatArg(args, "replacement")
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(vec))
	for i, v := range vec {
		if math.IsNaN(v) {
			out[i] = replacement
		} else {
			out[i] = v
		}
	}

	return out, nil
}

// center subtracts the bound center vector from x, element-wise.
func center(_ context.Context, args fitpipe.Args) (any, error) {
	vec, err := vectorArg(args, "x")
	if err != nil {
		return nil, err
	}
	centers, err := vectorArg(args, "center")
	if err != nil {
		return nil, err
	}
	if len(centers) != len(vec) {
		return nil, errors.Errorf("center has length %d, x has length %d", len(centers), len(vec))
	}

	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = v - centers[i]
	}

	return out, nil
}

// scale divides x by the bound scale vector, element-wise.
func scale(_ context.Context, args fitpipe.Args) (any, error) {
	vec, err := vectorArg(args, "x")
	if err != nil {
		return nil, err
	}
	scales, err := vectorArg(args, "scale")
	if err != nil {
		return nil, err
	}
	if len(scales) != len(vec) {
		return nil, errors.Errorf("scale has length %d, x has length %d", len(scales), len(vec))
	}

	out := make([]float64, len(vec))
	for i, v := range vec {
		if scales[i] == 0 {
			return nil, errors.Errorf("scale entry %d is zero", i)
		}
		out[i] = v / scales[i]
	}

	return out, nil
}
