package drawer_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-fitpipe/pkg/fitpipe"
	"github.com/askiada/go-fitpipe/pkg/fitpipe/drawer"
)

func TestRenderDOT(t *testing.T) {
	t.Parallel()

	center, err := fitpipe.NewOperation(fitpipe.Ref{Namespace: "prep", Name: "center"}, "x", fitpipe.Args{"center": []float64{1, 2}})
	require.NoError(t, err)
	scale, err := fitpipe.NewOperation(fitpipe.Ref{Namespace: "prep", Name: "scale"}, "x", fitpipe.Args{"scale": []float64{3, 4}})
	require.NoError(t, err)

	pipe, err := fitpipe.Compose(center, scale)
	require.NoError(t, err)

	fileName := filepath.Join(t.TempDir(), "pipeline.dot")
	err = drawer.Render(pipe, drawer.NewDOTDrawer(fileName))
	require.NoError(t, err)

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)

	out := string(content)
	assert.Contains(t, out, "strict digraph")
	assert.Contains(t, out, "start")
	assert.Contains(t, out, "end")
	assert.Contains(t, out, "0. prep.center")
	assert.Contains(t, out, "1. prep.scale")
	// Step labels show the bound-argument names.
	assert.Contains(t, out, "args=[center]")
	assert.Contains(t, out, "args=[scale]")
	// Chain gradient runs from blue to red.
	assert.Contains(t, strings.ToLower(out), "#0000f0")
	assert.Contains(t, strings.ToLower(out), "#f00000")
}

func TestRenderNilPipeline(t *testing.T) {
	t.Parallel()

	err := drawer.Render(nil, drawer.NewDOTDrawer("unused.dot"))
	assert.ErrorIs(t, err, fitpipe.ErrPipelineMustBeSet)
}

func TestDOTDrawerDuplicateStep(t *testing.T) {
	t.Parallel()

	drw := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "dup.dot"))
	require.NoError(t, drw.AddStep("step"))
	assert.Error(t, drw.AddStep("step"))
}

func TestDOTDrawerLabelUnknownStep(t *testing.T) {
	t.Parallel()

	drw := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "missing.dot"))
	assert.Error(t, drw.Label("missing", "label"))
}
