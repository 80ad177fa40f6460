package fitpipe

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet = errors.New("pipeline must be set")
	ErrRegistryMustBeSet = errors.New("registry must be set")
	ErrPartMustBeSet     = errors.New("part must be set")
	ErrSlotMustBeSet     = errors.New("slot must be set")
	ErrInvalidBinding    = errors.New("bound arguments must not define the slot")
	ErrEmptyPipeline     = errors.New("pipeline must contain at least one operation")
	ErrSealed            = errors.New("pipeline is sealed")
)

// UnresolvedError reports a target reference that is not registered in the
// executing process.
type UnresolvedError struct {
	Ref Ref
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("operation %q is not registered", e.Ref.String())
}

// StepError wraps an error raised by an operation during Apply with the
// position and description of the failing step.
type StepError struct {
	Index       int
	Description string
	Err         error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d %s: %v", e.Index, e.Description, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Cause exists for compatibility with github.com/pkg/errors.
func (e *StepError) Cause() error { return e.Err }

// CodecError reports a bound-argument value that cannot be encoded, or a
// persisted container that cannot be decoded.
type CodecError struct {
	msg   string
	cause error
}

func codecErrorf(format string, args ...any) *CodecError {
	return &CodecError{msg: fmt.Sprintf(format, args...)}
}

func wrapCodecError(cause error, format string, args ...any) *CodecError {
	return &CodecError{msg: fmt.Sprintf(format, args...), cause: cause}
}

func (e *CodecError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *CodecError) Unwrap() error { return e.cause }

// Cause exists for compatibility with github.com/pkg/errors.
func (e *CodecError) Cause() error { return e.cause }
