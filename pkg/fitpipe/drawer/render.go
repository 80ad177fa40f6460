package drawer

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/askiada/go-fitpipe/pkg/fitpipe"
)

const (
	startStepName = "start"
	endStepName   = "end"
)

// Render walks the pipeline's steps in order and feeds them to the drawer,
// framed by start and end nodes. Step nodes are labelled with the operation's
// description, so the drawing shows targets, slots and bound-argument names
// without exposing bound values.
func Render(pipe *fitpipe.Pipeline, drw Drawer) error {
	if pipe == nil {
		return fitpipe.ErrPipelineMustBeSet
	}

	items := pipe.Items()
	if len(items) == 0 {
		return fitpipe.ErrEmptyPipeline
	}

	err := drw.AddStep(startStepName)
	if err != nil {
		return errors.Wrap(err, "unable to add start step")
	}

	previous := startStepName
	for idx, op := range items {
		// Step names carry the index so the same target may appear twice.
		stepName := fmt.Sprintf("%d. %s", idx, op.Target)

		err = drw.AddStep(stepName)
		if err != nil {
			return errors.Wrapf(err, "unable to add step %s", stepName)
		}
		err = drw.Label(stepName, op.Describe())
		if err != nil {
			return errors.Wrapf(err, "unable to label step %s", stepName)
		}
		err = drw.AddLink(previous, stepName)
		if err != nil {
			return errors.Wrapf(err, "unable to link step %s", stepName)
		}

		previous = stepName
	}

	err = drw.AddStep(endStepName)
	if err != nil {
		return errors.Wrap(err, "unable to add end step")
	}
	err = drw.AddLink(previous, endStepName)
	if err != nil {
		return errors.Wrap(err, "unable to link end step")
	}

	err = drw.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}
