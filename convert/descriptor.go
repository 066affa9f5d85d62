package convert

import (
	"math"
	"reflect"
)

// Priorities on the conventional scale. Higher runs first.
const (
	PriorityFirst         = math.MaxInt
	PriorityExtremelyHigh = 1_000_000
	PriorityVeryHigh      = 10_000
	PriorityHigh          = 100
	PriorityNormal        = 0
	PriorityLow           = -100
	PriorityVeryLow       = -10_000
	PriorityExtremelyLow  = -1_000_000
	PriorityLast          = math.MinInt
)

// Func converts one value. The engine hands it a value whose runtime type is
// the descriptor's Input, or implements it when Input is an interface.
type Func func(v any) (any, error)

// Descriptor describes one registered converter.
type Descriptor struct {
	// Input is the type a converter accepts. Requests whose input type is
	// assignable to it match, so an interface type accepts every implementor.
	Input reflect.Type

	// Output is the type a converter produces. It must be assignable to the
	// requested target type.
	Output reflect.Type

	// Accepts optionally narrows matching beyond type assignability.
	Accepts func(in, out reflect.Type) bool

	Convert  Func
	Name     string
	Priority int

	seq uint64
}

// Seq returns the registration sequence number; earlier registrations have
// lower numbers. It is zero for descriptors that were never registered.
func (d Descriptor) Seq() uint64 {
	return d.seq
}

func (d Descriptor) matches(in, out reflect.Type) bool {
	if !in.AssignableTo(d.Input) || !d.Output.AssignableTo(out) {
		return false
	}
	return d.Accepts == nil || d.Accepts(in, out)
}

// interfaceRank caps the method count that still narrows an interface.
const interfaceRank = 32

// Specificity scores how closely d's declared types fit the request; lower is
// more specific. Each side scores 0 for an identical type and 1 for an
// assignable concrete type. An interface with methods scores between 2 and
// 2+interfaceRank, closer the more methods it declares, so io.ReadCloser
// beats io.Reader. The empty interface scores 3+interfaceRank. The two sides
// are summed.
func Specificity(d Descriptor, in, out reflect.Type) int {
	return distance(in, d.Input) + distance(d.Output, out)
}

func distance(narrow, wide reflect.Type) int {
	switch {
	case narrow == wide:
		return 0
	case wide.Kind() != reflect.Interface:
		return 1
	case wide.NumMethod() > 0:
		return 2 + interfaceRank - min(wide.NumMethod(), interfaceRank)
	default:
		return 3 + interfaceRank
	}
}
