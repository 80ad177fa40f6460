package fitpipe

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// FormatV1 tags the current persisted container layout.
const FormatV1 = "fitpipe/v1"

// Payload is an opaque bound-argument value, typically a fitted model. A
// payload type must be registered with RegisterPayload in every process that
// deserializes pipelines containing it. Once bound into an operation a
// payload is exclusively owned by that operation and must not be mutated.
type Payload interface {
	// PayloadType identifies the concrete type in the persisted container.
	PayloadType() string
	// MarshalPayload renders the payload as a self-contained byte slice.
	MarshalPayload() ([]byte, error)
}

// PayloadDecoder reconstructs a payload from the bytes MarshalPayload
// produced.
type PayloadDecoder func(data []byte) (Payload, error)

var payloadCodecs = struct {
	mu       sync.RWMutex
	decoders map[string]PayloadDecoder
}{decoders: make(map[string]PayloadDecoder)}

// RegisterPayload binds a decoder to a payload type name. Like operation
// registration it is expected to happen at process start; registering the
// same name twice replaces the earlier decoder.
func RegisterPayload(payloadType string, decode PayloadDecoder) {
	payloadCodecs.mu.Lock()
	defer payloadCodecs.mu.Unlock()
	payloadCodecs.decoders[payloadType] = decode
}

func resolvePayloadDecoder(payloadType string) (PayloadDecoder, bool) {
	payloadCodecs.mu.RLock()
	defer payloadCodecs.mu.RUnlock()
	decode, ok := payloadCodecs.decoders[payloadType]
	return decode, ok
}

type wireValue struct {
	Kind  string          `json:"kind"`
	Type  string          `json:"type,omitempty"`
	Value json.RawMessage `json:"value"`
}

type wireOperation struct {
	Target Ref                  `json:"target"`
	Slot   string               `json:"slot"`
	Args   map[string]wireValue `json:"args,omitempty"`
}

type wirePipeline struct {
	Format string          `json:"format"`
	Steps  []wireOperation `json:"steps"`
}

// Serialize renders the pipeline as a versioned container: step order, target
// references, slot names and the exact bound-argument values. The pipeline is
// sealed first; persistence and further appending do not mix. It fails with a
// CodecError when a bound argument cannot be encoded. JSON carries no NaN or
// infinity, so bound vectors containing such entries are rejected the same
// way; non-finite values belong to the data flowing through a pipeline, not
// to its fitted parameters.
func Serialize(p *Pipeline) ([]byte, error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}

	p.Seal()

	steps := p.Items()
	if len(steps) == 0 {
		return nil, ErrEmptyPipeline
	}

	wire := wirePipeline{Format: FormatV1, Steps: make([]wireOperation, 0, len(steps))}

	for _, op := range steps {
		wireOp := wireOperation{Target: op.Target, Slot: op.Slot}
		if len(op.args) > 0 {
			wireOp.Args = make(map[string]wireValue, len(op.args))
		}

		for name, value := range op.args {
			enc, err := encodeValue(value)
			if err != nil {
				return nil, errors.Wrapf(err, "operation %s, argument %q", op.Target, name)
			}
			wireOp.Args[name] = enc
		}

		wire.Steps = append(wire.Steps, wireOp)
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return nil, wrapCodecError(err, "unable to encode container")
	}

	return data, nil
}

// Deserialize reconstructs a pipeline from a serialized container. The result
// is sealed. It fails with a CodecError on a malformed blob, an unknown
// format tag, an unknown value kind or an unregistered payload type.
func Deserialize(data []byte) (*Pipeline, error) {
	var wire wirePipeline
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, wrapCodecError(err, "unable to decode container")
	}

	if wire.Format != FormatV1 {
		return nil, codecErrorf("unsupported container format %q", wire.Format)
	}
	if len(wire.Steps) == 0 {
		return nil, wrapCodecError(ErrEmptyPipeline, "container has no steps")
	}

	pipe := &Pipeline{ops: make([]*Operation, 0, len(wire.Steps))}

	for idx, wireOp := range wire.Steps {
		args := make(Args, len(wireOp.Args))
		for name, enc := range wireOp.Args {
			value, err := decodeValue(enc)
			if err != nil {
				return nil, errors.Wrapf(err, "step %d, argument %q", idx, name)
			}
			args[name] = value
		}

		op, err := NewOperation(wireOp.Target, wireOp.Slot, args)
		if err != nil {
			return nil, wrapCodecError(err, "step %d is invalid", idx)
		}
		pipe.ops = append(pipe.ops, op)
	}

	pipe.Seal()

	return pipe, nil
}

// Save serializes the pipeline to a file.
func Save(p *Pipeline, path string) error {
	data, err := Serialize(p)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return errors.Wrapf(err, "unable to write %s", path)
	}

	return nil
}

// Load reads a serialized pipeline from a file.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	return Deserialize(data)
}

// MarshalJSON implements json.Marshaler using the versioned container.
func (p *Pipeline) MarshalJSON() ([]byte, error) {
	return Serialize(p)
}

const (
	kindFloat   = "float"
	kindInt     = "int"
	kindBool    = "bool"
	kindString  = "string"
	kindVector  = "vector"
	kindStrings = "strings"
	kindPayload = "payload"
)

func encodeValue(value any) (wireValue, error) {
	switch val := value.(type) {
	case float64:
		return marshalWire(kindFloat, "", val)
	case int64:
		return marshalWire(kindInt, "", val)
	case bool:
		return marshalWire(kindBool, "", val)
	case string:
		return marshalWire(kindString, "", val)
	case []float64:
		return marshalWire(kindVector, "", val)
	case []string:
		return marshalWire(kindStrings, "", val)
	case Payload:
		data, err := val.MarshalPayload()
		if err != nil {
			return wireValue{}, wrapCodecError(err, "unable to marshal payload %q", val.PayloadType())
		}
		return marshalWire(kindPayload, val.PayloadType(), data)
	default:
		return wireValue{}, codecErrorf("unsupported value type %T", value)
	}
}

func marshalWire(kind, payloadType string, value any) (wireValue, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return wireValue{}, wrapCodecError(err, "unable to encode %s value", kind)
	}

	return wireValue{Kind: kind, Type: payloadType, Value: raw}, nil
}

func decodeValue(enc wireValue) (any, error) {
	switch enc.Kind {
	case kindFloat:
		var val float64
		if err := unmarshalWire(enc, &val); err != nil {
			return nil, err
		}
		return val, nil
	case kindInt:
		var val int64
		if err := unmarshalWire(enc, &val); err != nil {
			return nil, err
		}
		return val, nil
	case kindBool:
		var val bool
		if err := unmarshalWire(enc, &val); err != nil {
			return nil, err
		}
		return val, nil
	case kindString:
		var val string
		if err := unmarshalWire(enc, &val); err != nil {
			return nil, err
		}
		return val, nil
	case kindVector:
		var val []float64
		if err := unmarshalWire(enc, &val); err != nil {
			return nil, err
		}
		return val, nil
	case kindStrings:
		var val []string
		if err := unmarshalWire(enc, &val); err != nil {
			return nil, err
		}
		return val, nil
	case kindPayload:
		decode, ok := resolvePayloadDecoder(enc.Type)
		if !ok {
			return nil, codecErrorf("payload type %q is not registered", enc.Type)
		}
		var data []byte
		if err := unmarshalWire(enc, &data); err != nil {
			return nil, err
		}
		payload, err := decode(data)
		if err != nil {
			return nil, wrapCodecError(err, "unable to decode payload %q", enc.Type)
		}
		return payload, nil
	default:
		return nil, codecErrorf("unknown value kind %q", enc.Kind)
	}
}

func unmarshalWire(enc wireValue, dst any) error {
	err := json.Unmarshal(enc.Value, dst)
	if err != nil {
		return wrapCodecError(err, "unable to decode %s value", enc.Kind)
	}

	return nil
}
