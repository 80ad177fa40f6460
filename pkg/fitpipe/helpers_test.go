package fitpipe_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-fitpipe/pkg/fitpipe"
)

var (
	refIdentity = fitpipe.Ref{Namespace: "test", Name: "identity"}
	refAdd      = fitpipe.Ref{Namespace: "test", Name: "add"}
	refMultiply = fitpipe.Ref{Namespace: "test", Name: "multiply"}
	refFail     = fitpipe.Ref{Namespace: "test", Name: "fail"}
)

func newTestRegistry(t *testing.T) *fitpipe.Registry {
	t.Helper()

	reg := fitpipe.NewRegistry()
	reg.Register(refIdentity, func(_ context.Context, args fitpipe.Args) (any, error) {
		return args["x"], nil
	})
	reg.Register(refAdd, func(_ context.Context, args fitpipe.Args) (any, error) {
		return args["x"].(float64) + args["operand"].(float64), nil
	})
	reg.Register(refMultiply, func(_ context.Context, args fitpipe.Args) (any, error) {
		return args["x"].(float64) * args["operand"].(float64), nil
	})
	return reg
}

func mustOperation(t *testing.T, target fitpipe.Ref, slot string, args fitpipe.Args) *fitpipe.Operation {
	t.Helper()

	op, err := fitpipe.NewOperation(target, slot, args)
	require.NoError(t, err)
	return op
}

func addOp(t *testing.T, operand float64) *fitpipe.Operation {
	t.Helper()
	return mustOperation(t, refAdd, "x", fitpipe.Args{"operand": operand})
}

func multiplyOp(t *testing.T, operand float64) *fitpipe.Operation {
	t.Helper()
	return mustOperation(t, refMultiply, "x", fitpipe.Args{"operand": operand})
}
