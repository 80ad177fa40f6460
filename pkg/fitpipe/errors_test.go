package fitpipe_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-fitpipe/pkg/fitpipe"
)

func TestStepErrorRendering(t *testing.T) {
	t.Parallel()

	err := &fitpipe.StepError{
		Index:       2,
		Description: "prep.scale(slot=x, args=[scale])",
		Err:         assert.AnError,
	}

	assert.Contains(t, err.Error(), "step 2")
	assert.Contains(t, err.Error(), "prep.scale(slot=x, args=[scale])")
	assert.Equal(t, assert.AnError, errors.Cause(err))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestUnresolvedErrorRendering(t *testing.T) {
	t.Parallel()

	err := &fitpipe.UnresolvedError{Ref: fitpipe.Ref{Namespace: "prep", Name: "center"}}
	assert.Equal(t, `operation "prep.center" is not registered`, err.Error())
}
