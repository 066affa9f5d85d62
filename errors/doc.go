// Package errors provides structured error types for the typeconv module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the input and output type names, the converter that ran,
// the element path of the offending value, and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseList, errors.KindTypeMismatch).
//		Index(2).
//		Types(reflect.TypeOf(""), reflect.TypeOf(int32(0))).
//		Detail("element is not numeric").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NoConverterFound(in, out)
//	err := errors.TypeMismatch(errors.PhaseUnwrap, 3, got, "int32")
//	err := errors.ConversionFailed(in, out, "IntArrayUnwrapper", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// The package sentinels (ErrNoConverter, ErrTypeMismatch, ...) match any
// Error of their Kind regardless of Phase.
package errors
