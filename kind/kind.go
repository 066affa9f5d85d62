package kind

import (
	"reflect"
	"strings"

	"go.bytecodealliance.org/wit"
)

// Kind identifies one of the fixed-width primitive element representations.
type Kind uint8

const (
	Bool Kind = iota
	Byte
	Char
	Short
	Int
	Long
	Float
	Double
)

// Primitive is the set of Go element types backing the kinds.
type Primitive interface {
	bool | int8 | uint16 | int16 | int32 | int64 | float32 | float64
}

type info struct {
	elem      reflect.Type
	wit       wit.Type
	zero      any
	name      string
	container string
	size      uint32
}

var table = [...]info{
	Bool:   {name: "bool", container: "BoolArray", elem: reflect.TypeFor[bool](), zero: false, size: 1, wit: wit.Bool{}},
	Byte:   {name: "byte", container: "ByteArray", elem: reflect.TypeFor[int8](), zero: int8(0), size: 1, wit: wit.S8{}},
	Char:   {name: "char", container: "CharArray", elem: reflect.TypeFor[uint16](), zero: uint16(0), size: 2, wit: wit.U16{}},
	Short:  {name: "short", container: "ShortArray", elem: reflect.TypeFor[int16](), zero: int16(0), size: 2, wit: wit.S16{}},
	Int:    {name: "int", container: "IntArray", elem: reflect.TypeFor[int32](), zero: int32(0), size: 4, wit: wit.S32{}},
	Long:   {name: "long", container: "LongArray", elem: reflect.TypeFor[int64](), zero: int64(0), size: 8, wit: wit.S64{}},
	Float:  {name: "float", container: "FloatArray", elem: reflect.TypeFor[float32](), zero: float32(0), size: 4, wit: wit.F32{}},
	Double: {name: "double", container: "DoubleArray", elem: reflect.TypeFor[float64](), zero: float64(0), size: 8, wit: wit.F64{}},
}

var aliases = map[string]Kind{
	"boolean": Bool,
	"int8":    Byte,
	"uint16":  Char,
	"int16":   Short,
	"integer": Int,
	"int32":   Int,
	"int64":   Long,
	"float32": Float,
	"float64": Double,
}

// All returns every kind in declaration order.
func All() []Kind {
	return []Kind{Bool, Byte, Char, Short, Int, Long, Float, Double}
}

func (k Kind) Valid() bool {
	return int(k) < len(table)
}

func (k Kind) String() string {
	if k.Valid() {
		return table[k].name
	}
	return "unknown"
}

// ArrayName is the name of the fixed-length array of this kind, e.g. "int[]".
func (k Kind) ArrayName() string {
	return k.String() + "[]"
}

// ContainerName is the name of the resizable container of this kind, e.g. "IntArray".
func (k Kind) ContainerName() string {
	if k.Valid() {
		return table[k].container
	}
	return "unknown"
}

// ElemType returns the Go element type, or nil for an invalid kind.
func (k Kind) ElemType() reflect.Type {
	if k.Valid() {
		return table[k].elem
	}
	return nil
}

// SliceType returns []T for the kind's element type T.
func (k Kind) SliceType() reflect.Type {
	if k.Valid() {
		return reflect.SliceOf(table[k].elem)
	}
	return nil
}

// Zero returns the kind's default value, boxed.
func (k Kind) Zero() any {
	if k.Valid() {
		return table[k].zero
	}
	return nil
}

// Size returns the element width in bytes.
func (k Kind) Size() uint32 {
	if k.Valid() {
		return table[k].size
	}
	return 0
}

// WIT returns the Component Model primitive with the same storage layout.
func (k Kind) WIT() wit.Type {
	if k.Valid() {
		return table[k].wit
	}
	return nil
}

func (k Kind) IsIntegral() bool {
	return k >= Byte && k <= Long
}

func (k Kind) IsFloating() bool {
	return k == Float || k == Double
}

// Of returns the kind whose element type is exactly t.
func Of(t reflect.Type) (Kind, bool) {
	for i := range table {
		if table[i].elem == t {
			return Kind(i), true
		}
	}
	return 0, false
}

// For returns the kind of the element type T.
func For[T Primitive]() Kind {
	k, _ := Of(reflect.TypeFor[T]())
	return k
}

// Parse resolves a kind name ("int", "double") or Go element name ("int32").
func Parse(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range table {
		if table[i].name == name {
			return Kind(i), true
		}
	}
	if k, ok := aliases[name]; ok {
		return k, true
	}
	return 0, false
}
