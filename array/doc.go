// Package array implements the primitive containers and the algorithms that
// move values between them.
//
// Array[T] is the resizable container of one kind. Three conversions are
// provided, each generic over kind.Primitive:
//
//	Wrap     []T       -> *Array[T]   value copy, size == capacity == len
//	Unwrap   Sequence  -> []T         exact element types only
//	ToArray  Sequence  -> []T         numeric coercion per kind rules
//
// Codec exposes the same conversions per kind through boxed values so that
// a registry can install one descriptor set per entry of the kind table:
//
//	c := array.CodecFor(kind.Int)
//	out, err := c.WrapValue([]int32{1, 2, 3}) // *Array[int32]
//
// A nil slice wraps to an empty container; a nil container unwraps to an
// empty, non-nil slice.
package array
