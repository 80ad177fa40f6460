package ops

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/askiada/go-fitpipe/pkg/fitpipe"
)

const linearModelPayloadType = "ops.linear_model"

// LinearModel is a fitted linear model carried as an opaque bound argument.
// It implements fitpipe.Payload, so pipelines embedding one remain fully
// serializable.
type LinearModel struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

func (m *LinearModel) PayloadType() string { return linearModelPayloadType }

func (m *LinearModel) MarshalPayload() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal linear model")
	}

	return data, nil
}

func decodeLinearModel(data []byte) (fitpipe.Payload, error) {
	model := &LinearModel{}
	err := json.Unmarshal(data, model)
	if err != nil {
		return nil, errors.Wrap(err, "unable to unmarshal linear model")
	}

	return model, nil
}

// predict applies the bound model to the x vector: the dot product of x with
// the coefficients, plus the intercept.
func predict(_ context.Context, args fitpipe.Args) (any, error) {
	vec, err := vectorArg(args, "x")
	if err != nil {
		return nil, err
	}

	payload, ok := args["model"].(*LinearModel)
	if !ok {
		return nil, errors.Errorf("argument \"model\" must be a linear model, got %T", args["model"])
	}
	if len(payload.Coefficients) != len(vec) {
		return nil, errors.Errorf("model has %d coefficients, x has length %d", len(payload.Coefficients), len(vec))
	}

	sum := payload.Intercept
	for i, v := range vec {
		sum += v * payload.Coefficients[i]
	}

	return sum, nil
}

var _ fitpipe.Payload = (*LinearModel)(nil)
