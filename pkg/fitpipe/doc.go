// Package fitpipe composes fit-time data treatments into a single reusable value.
//
// A pipeline is an ordered sequence of operations. Each operation names an external
// callable (by namespace and name, resolved through a Registry at invocation time),
// carries an argument bundle captured when the pipeline was built, and reserves exactly
// one argument position, the slot, for the value flowing through the pipeline. Applying
// a pipeline threads a single value through the operations in order: the output of each
// step becomes the slot argument of the next.
//
// This shape fits the classic fit/apply split of data preparation. Imputation values,
// centering vectors or fitted model coefficients are computed once on training data,
// bound into operations, and the resulting pipeline re-applies the identical treatment
// to any later batch.
//
// Because operations reference their callables by name rather than capturing closures,
// a pipeline can be serialized to a versioned container and reconstructed in another
// process, provided that process registers the same names. Opaque fitted objects embed
// into the container through the Payload interface.
//
// A pipeline starts in a building state where steps may still be appended. The first
// Apply, or an explicit Seal, makes it immutable. A sealed pipeline is safe for
// concurrent use.
package fitpipe
