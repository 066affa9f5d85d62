package guest

import (
	"reflect"

	"github.com/wippyai/typeconv/convert"
	"github.com/wippyai/typeconv/errors"
	"github.com/wippyai/typeconv/kind"
)

var listType = reflect.TypeFor[List]()

var kindConverters = [...]func(*Memory) []convert.Descriptor{
	kind.Bool:   descriptors[bool],
	kind.Byte:   descriptors[int8],
	kind.Char:   descriptors[uint16],
	kind.Short:  descriptors[int16],
	kind.Int:    descriptors[int32],
	kind.Long:   descriptors[int64],
	kind.Float:  descriptors[float32],
	kind.Double: descriptors[float64],
}

// Converters returns descriptors that move primitive slices into and out of
// m, two per kind:
//
//	<Kind>GuestLowerer  []T  -> List
//	<Kind>GuestLifter   List -> []T
func Converters(m *Memory) []convert.Descriptor {
	var descs []convert.Descriptor
	for _, k := range kind.All() {
		descs = append(descs, kindConverters[k](m)...)
	}
	return descs
}

func descriptors[T kind.Primitive](m *Memory) []convert.Descriptor {
	k := kind.For[T]()
	prefix := k.ContainerName()
	prefix = prefix[:len(prefix)-len("Array")]
	slice := reflect.TypeFor[[]T]()

	return []convert.Descriptor{
		{
			Name:     prefix + "GuestLowerer",
			Input:    slice,
			Output:   listType,
			Priority: convert.PriorityNormal,
			Convert: func(v any) (any, error) {
				values, ok := v.([]T)
				if !ok {
					return nil, errors.New(errors.PhaseLower, errors.KindTypeMismatch).
						Types(reflect.TypeOf(v), slice).
						Build()
				}
				l, err := Lower(m, values)
				if err != nil {
					return nil, err
				}
				return l, nil
			},
		},
		{
			Name:     prefix + "GuestLifter",
			Input:    listType,
			Output:   slice,
			Priority: convert.PriorityNormal,
			Convert: func(v any) (any, error) {
				l, ok := v.(List)
				if !ok {
					return nil, errors.New(errors.PhaseLift, errors.KindTypeMismatch).
						Types(reflect.TypeOf(v), listType).
						Build()
				}
				out, err := Lift[T](m, l)
				if err != nil {
					return nil, err
				}
				return out, nil
			},
		},
	}
}
