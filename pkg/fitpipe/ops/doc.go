// Package ops provides stock operations for fitpipe pipelines: arithmetic
// steps, fit-time data treatments (imputation, centering, scaling) and the
// application of a fitted linear model.
//
// How the bound parameters are obtained, imputation values from training
// data, centering vectors, model coefficients, is the caller's business; the
// operations only re-apply them. Register wires everything, including the
// fitted-model payload codec, into a process:
//
//	reg := fitpipe.NewRegistry()
//	ops.Register(reg)
package ops
