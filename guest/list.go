package guest

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/wippyai/typeconv/errors"
	"github.com/wippyai/typeconv/kind"
	"go.bytecodealliance.org/wit"
)

// List is a primitive list stored in guest memory in canonical ABI layout:
// Len little-endian elements starting at Ptr.
type List struct {
	Kind kind.Kind
	Ptr  uint32
	Len  uint32
}

func (l List) String() string {
	return fmt.Sprintf("list<%s>{ptr=%d len=%d}", l.Kind, l.Ptr, l.Len)
}

type layout struct {
	size  uint32
	align uint32
}

func layoutOf(t wit.Type) layout {
	switch t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return layout{size: 1, align: 1}
	case wit.U16, wit.S16:
		return layout{size: 2, align: 2}
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return layout{size: 4, align: 4}
	case wit.U64, wit.S64, wit.F64:
		return layout{size: 8, align: 8}
	default:
		return layout{size: 0, align: 1}
	}
}

// Lower copies values into m and returns the list describing them.
func Lower[T kind.Primitive](m *Memory, values []T) (List, error) {
	k := kind.For[T]()
	lay := layoutOf(k.WIT())

	total := uint64(len(values)) * uint64(lay.size)
	if total > math.MaxUint32 {
		return List{}, errors.AllocationFailed(errors.PhaseLower, math.MaxUint32, lay.align)
	}

	buf := make([]byte, 0, total)
	for _, v := range values {
		buf = appendElem(buf, v)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ptr, err := m.alloc(uint32(total), lay.align)
	if err != nil {
		return List{}, err
	}
	if err := m.write(ptr, buf); err != nil {
		return List{}, err
	}
	return List{Kind: k, Ptr: ptr, Len: uint32(len(values))}, nil
}

// Lift copies the elements of l out of m. The list's kind must match T.
func Lift[T kind.Primitive](m *Memory, l List) ([]T, error) {
	want := kind.For[T]()
	if l.Kind != want {
		return nil, errors.New(errors.PhaseLift, errors.KindTypeMismatch).
			InputType("list<" + l.Kind.String() + ">").
			OutputType(reflect.TypeFor[[]T]().String()).
			Value(l).
			Detail("guest list holds %s elements", l.Kind).
			Build()
	}

	lay := layoutOf(want.WIT())
	n := uint64(l.Len) * uint64(lay.size)
	if uint64(l.Ptr)+n > uint64(m.Size()) {
		return nil, errors.New(errors.PhaseLift, errors.KindOutOfBounds).
			Value(l).
			Detail("list [%d, %d) exceeds memory size %d", l.Ptr, uint64(l.Ptr)+n, m.Size()).
			Build()
	}

	m.mu.Lock()
	data, ok := m.read(l.Ptr, uint32(n))
	out := make([]T, l.Len)
	if ok {
		for i := range out {
			out[i] = decodeElem[T](data[uint32(i)*lay.size:])
		}
	}
	m.mu.Unlock()

	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseLift, int(l.Ptr), int(m.Size()))
	}
	return out, nil
}

func appendElem[T kind.Primitive](buf []byte, v T) []byte {
	switch x := any(v).(type) {
	case bool:
		if x {
			return append(buf, 1)
		}
		return append(buf, 0)
	case int8:
		return append(buf, byte(x))
	case uint16:
		return binary.LittleEndian.AppendUint16(buf, x)
	case int16:
		return binary.LittleEndian.AppendUint16(buf, uint16(x))
	case int32:
		return binary.LittleEndian.AppendUint32(buf, uint32(x))
	case int64:
		return binary.LittleEndian.AppendUint64(buf, uint64(x))
	case float32:
		return binary.LittleEndian.AppendUint32(buf, math.Float32bits(x))
	case float64:
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(x))
	}
	return buf
}

func decodeElem[T kind.Primitive](b []byte) T {
	var out T
	switch p := any(&out).(type) {
	case *bool:
		*p = b[0] != 0
	case *int8:
		*p = int8(b[0])
	case *uint16:
		*p = binary.LittleEndian.Uint16(b)
	case *int16:
		*p = int16(binary.LittleEndian.Uint16(b))
	case *int32:
		*p = int32(binary.LittleEndian.Uint32(b))
	case *int64:
		*p = int64(binary.LittleEndian.Uint64(b))
	case *float32:
		*p = math.Float32frombits(binary.LittleEndian.Uint32(b))
	case *float64:
		*p = math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	return out
}
