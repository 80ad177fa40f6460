package fitpipe_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-fitpipe/pkg/fitpipe"
)

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	fn, ok := reg.Resolve(refAdd)
	require.True(t, ok)

	out, err := fn(context.Background(), fitpipe.Args{"x": 1.0, "operand": 2.0})
	require.NoError(t, err)
	assert.Equal(t, 3.0, out)

	_, ok = reg.Resolve(fitpipe.Ref{Namespace: "test", Name: "missing"})
	assert.False(t, ok)
}

func TestRegistryNamesSorted(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)
	assert.Equal(t, []string{"test.add", "test.identity", "test.multiply"}, reg.Names())
}

func TestRegistryReplace(t *testing.T) {
	t.Parallel()

	reg := fitpipe.NewRegistry()
	ref := fitpipe.Ref{Namespace: "test", Name: "op"}
	reg.Register(ref, func(_ context.Context, _ fitpipe.Args) (any, error) { return 1, nil })
	reg.Register(ref, func(_ context.Context, _ fitpipe.Args) (any, error) { return 2, nil })

	fn, ok := reg.Resolve(ref)
	require.True(t, ok)
	out, err := fn(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, out)
}

func TestRegistryConcurrent(t *testing.T) {
	t.Parallel()

	reg := fitpipe.NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		localIdx := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref := fitpipe.Ref{Namespace: "test", Name: string(rune('a' + localIdx))}
			reg.Register(ref, func(_ context.Context, _ fitpipe.Args) (any, error) { return nil, nil })
			_, ok := reg.Resolve(ref)
			assert.True(t, ok)
		}()
	}
	wg.Wait()

	assert.Len(t, reg.Names(), 8)
}
