package convert

import (
	"reflect"

	"github.com/wippyai/typeconv/array"
	"github.com/wippyai/typeconv/kind"
)

var (
	sequenceType = reflect.TypeFor[array.Sequence]()
	boxedType    = reflect.TypeFor[[]any]()
)

// Builtins returns the primitive array converters, four per kind:
//
//	<Kind>ArrayWrapper        []T       -> *Array[T]  PriorityHigh
//	<Kind>ArrayUnwrapper      *Array[T] -> []T        PriorityHigh
//	<Kind>ListConverter       Sequence  -> []T        PriorityNormal
//	<Kind>SliceListConverter  []any     -> []T        PriorityNormal
//
// Kind is the container prefix, e.g. "Int" for IntArray.
func Builtins() []Descriptor {
	var descs []Descriptor
	for _, k := range kind.All() {
		descs = append(descs, kindDescriptors(array.CodecFor(k))...)
	}
	return descs
}

// RegisterBuiltins registers Builtins into r.
func RegisterBuiltins(r *Registry) error {
	return r.RegisterAll(Builtins()...)
}

func kindDescriptors(c array.Codec) []Descriptor {
	prefix := c.Kind().ContainerName()
	prefix = prefix[:len(prefix)-len("Array")]

	return []Descriptor{
		{
			Name:     prefix + "ArrayWrapper",
			Input:    c.SliceType(),
			Output:   c.ContainerType(),
			Priority: PriorityHigh,
			Convert:  c.WrapValue,
		},
		{
			Name:     prefix + "ArrayUnwrapper",
			Input:    c.ContainerType(),
			Output:   c.SliceType(),
			Priority: PriorityHigh,
			Convert:  c.UnwrapValue,
		},
		{
			Name:     prefix + "ListConverter",
			Input:    sequenceType,
			Output:   c.SliceType(),
			Priority: PriorityNormal,
			Convert:  c.ListValue,
		},
		{
			Name:     prefix + "SliceListConverter",
			Input:    boxedType,
			Output:   c.SliceType(),
			Priority: PriorityNormal,
			Convert:  c.ListValue,
		},
	}
}
