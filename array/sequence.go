package array

import (
	"reflect"

	"github.com/wippyai/typeconv/errors"
	"github.com/wippyai/typeconv/kind"
)

// Sequence is an ordered collection of boxed elements with a known length.
type Sequence interface {
	Len() int
	At(i int) any
}

// Boxed adapts a []any to Sequence.
type Boxed []any

func (b Boxed) Len() int     { return len(b) }
func (b Boxed) At(i int) any { return b[i] }

// Wrap copies values into a new container whose size and capacity equal
// len(values). A nil slice wraps to an empty container.
func Wrap[T kind.Primitive](values []T) *Array[T] {
	data := make([]T, len(values))
	copy(data, values)
	return &Array[T]{data: data}
}

// Unwrap returns the elements of seq as a slice of exactly seq.Len()
// elements. Every element must already be a T; a nil sequence unwraps to an
// empty slice.
func Unwrap[T kind.Primitive](seq Sequence) ([]T, error) {
	if a, ok := seq.(*Array[T]); ok {
		out := make([]T, a.Len())
		copy(out, a.Slice())
		return out, nil
	}
	return collect(seq, errors.PhaseUnwrap, kind.Unbox[T])
}

// ToArray converts every element of seq to T under the kind's numeric
// conversion rules. A failing element discards the whole result.
func ToArray[T kind.Primitive](seq Sequence) ([]T, error) {
	return collect(seq, errors.PhaseList, kind.Coerce[T])
}

// ToArrayFromSlice is ToArray over a plain boxed slice.
func ToArrayFromSlice[T kind.Primitive](values []any) ([]T, error) {
	return ToArray[T](Boxed(values))
}

// ToSequence boxes values into a new sequence.
func ToSequence[T kind.Primitive](values []T) Sequence {
	return Wrap(values)
}

func collect[T kind.Primitive](seq Sequence, phase errors.Phase, elem func(any) (T, bool)) ([]T, error) {
	if seq == nil {
		return []T{}, nil
	}

	n := seq.Len()
	out := make([]T, n)
	for i := range n {
		v := seq.At(i)
		t, ok := elem(v)
		if !ok {
			return nil, errors.New(phase, errors.KindTypeMismatch).
				Index(i).
				InputType(errors.TypeName(reflect.TypeOf(v))).
				OutputType(reflect.TypeFor[T]().String()).
				Value(v).
				Detail("element cannot be converted to %s", kind.For[T]()).
				Build()
		}
		out[i] = t
	}
	return out, nil
}
