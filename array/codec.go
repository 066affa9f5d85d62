package array

import (
	"reflect"

	"github.com/wippyai/typeconv/errors"
	"github.com/wippyai/typeconv/kind"
)

// Wraps converts a boxed primitive slice into its container.
type Wraps interface {
	WrapValue(v any) (any, error)
}

// Unwraps converts a boxed container or sequence back into a primitive slice.
type Unwraps interface {
	UnwrapValue(v any) (any, error)
}

// Lists converts a boxed sequence of loosely typed elements into a
// primitive slice.
type Lists interface {
	ListValue(v any) (any, error)
}

// Codec is the per-kind set of conversions, usable without knowing the
// element type at compile time.
type Codec interface {
	Wraps
	Unwraps
	Lists
	Kind() kind.Kind
	SliceType() reflect.Type
	ContainerType() reflect.Type
}

type codec[T kind.Primitive] struct{}

var codecs = [...]Codec{
	kind.Bool:   codec[bool]{},
	kind.Byte:   codec[int8]{},
	kind.Char:   codec[uint16]{},
	kind.Short:  codec[int16]{},
	kind.Int:    codec[int32]{},
	kind.Long:   codec[int64]{},
	kind.Float:  codec[float32]{},
	kind.Double: codec[float64]{},
}

// CodecFor returns the codec of k, or nil for an invalid kind.
func CodecFor(k kind.Kind) Codec {
	if !k.Valid() {
		return nil
	}
	return codecs[k]
}

func (codec[T]) Kind() kind.Kind {
	return kind.For[T]()
}

func (codec[T]) SliceType() reflect.Type {
	return reflect.TypeFor[[]T]()
}

func (codec[T]) ContainerType() reflect.Type {
	return reflect.TypeFor[*Array[T]]()
}

func (c codec[T]) WrapValue(v any) (any, error) {
	values, ok := v.([]T)
	if !ok {
		return nil, c.mismatch(errors.PhaseWrap, v, c.SliceType())
	}
	return Wrap(values), nil
}

func (c codec[T]) UnwrapValue(v any) (any, error) {
	seq, ok := v.(Sequence)
	if !ok {
		return nil, c.mismatch(errors.PhaseUnwrap, v, c.ContainerType())
	}
	return boxResult(Unwrap[T](seq))
}

func (c codec[T]) ListValue(v any) (any, error) {
	switch seq := v.(type) {
	case Sequence:
		return boxResult(ToArray[T](seq))
	case []any:
		return boxResult(ToArrayFromSlice[T](seq))
	}
	return nil, c.mismatch(errors.PhaseList, v, c.SliceType())
}

// boxResult keeps a failed conversion from returning a typed nil slice.
func boxResult[T kind.Primitive](out []T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (codec[T]) mismatch(phase errors.Phase, v any, want reflect.Type) *errors.Error {
	return errors.New(phase, errors.KindTypeMismatch).
		InputType(errors.TypeName(reflect.TypeOf(v))).
		OutputType(want.String()).
		Value(v).
		Detail("value is not a %s", want).
		Build()
}
