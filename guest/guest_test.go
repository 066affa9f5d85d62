package guest

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/wippyai/typeconv/convert"
	tcerrors "github.com/wippyai/typeconv/errors"
	"github.com/wippyai/typeconv/kind"
)

func newMemory(t *testing.T) *Memory {
	t.Helper()
	ctx := context.Background()
	m, err := NewMemory(ctx)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	t.Cleanup(func() { _ = m.Close(ctx) })
	return m
}

func TestNewMemory(t *testing.T) {
	m := newMemory(t)
	if m.Size() != pageSize {
		t.Errorf("Size = %d, want one page", m.Size())
	}
	if m.Used() != heapBase {
		t.Errorf("Used = %d, want %d", m.Used(), heapBase)
	}
}

func TestMemory_Alloc(t *testing.T) {
	m := newMemory(t)

	p1, err := m.Alloc(3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if p1 != heapBase {
		t.Errorf("first ptr = %d, want %d", p1, heapBase)
	}

	p2, err := m.Alloc(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if p2%8 != 0 || p2 < p1+3 {
		t.Errorf("second ptr = %d, want 8-aligned after %d", p2, p1+3)
	}

	if _, err := m.Alloc(4, 3); !errors.Is(err, tcerrors.ErrInvalidArgument) {
		t.Errorf("alignment 3 err = %v", err)
	}
	if _, err := m.Alloc(4, 0); !errors.Is(err, tcerrors.ErrInvalidArgument) {
		t.Errorf("alignment 0 err = %v", err)
	}
}

func TestMemory_Grows(t *testing.T) {
	m := newMemory(t)

	ptr, err := m.Alloc(3*pageSize, 8)
	if err != nil {
		t.Fatal(err)
	}
	if uint64(ptr)+3*pageSize > uint64(m.Size()) {
		t.Errorf("memory did not grow: ptr=%d size=%d", ptr, m.Size())
	}
}

func TestMemory_GrowthLimit(t *testing.T) {
	ctx := context.Background()
	m, err := NewMemoryWithConfig(ctx, &Config{MemoryLimitPages: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close(ctx)

	_, err = m.Alloc(4*pageSize, 1)
	var e *tcerrors.Error
	if !errors.As(err, &e) || e.Kind != tcerrors.KindAllocation {
		t.Errorf("err = %v, want allocation failure", err)
	}
}

func TestMemory_Reset(t *testing.T) {
	m := newMemory(t)
	if _, err := m.Alloc(100, 1); err != nil {
		t.Fatal(err)
	}
	m.Reset()
	if m.Used() != heapBase {
		t.Errorf("Used after Reset = %d", m.Used())
	}
}

func lowerLift[T kind.Primitive](t *testing.T, m *Memory, values []T, equal func(a, b T) bool) {
	t.Helper()

	l, err := Lower(m, values)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if l.Kind != kind.For[T]() || l.Len != uint32(len(values)) {
		t.Fatalf("list = %v", l)
	}
	if l.Ptr%kind.For[T]().Size() != 0 {
		t.Errorf("ptr %d not aligned to %d", l.Ptr, kind.For[T]().Size())
	}

	back, err := Lift[T](m, l)
	if err != nil {
		t.Fatalf("Lift: %v", err)
	}
	if len(back) != len(values) {
		t.Fatalf("len = %d", len(back))
	}
	for i := range values {
		if !equal(back[i], values[i]) {
			t.Errorf("[%d] = %v, want %v", i, back[i], values[i])
		}
	}
}

func eq[T comparable](a, b T) bool { return a == b }

func TestLowerLift_EveryKind(t *testing.T) {
	m := newMemory(t)

	t.Run("bool", func(t *testing.T) { lowerLift(t, m, []bool{true, false, true}, eq[bool]) })
	t.Run("byte", func(t *testing.T) { lowerLift(t, m, []int8{math.MinInt8, -1, math.MaxInt8}, eq[int8]) })
	t.Run("char", func(t *testing.T) { lowerLift(t, m, []uint16{0, 'A', math.MaxUint16}, eq[uint16]) })
	t.Run("short", func(t *testing.T) { lowerLift(t, m, []int16{math.MinInt16, math.MaxInt16}, eq[int16]) })
	t.Run("int", func(t *testing.T) { lowerLift(t, m, []int32{math.MinInt32, 0, math.MaxInt32}, eq[int32]) })
	t.Run("long", func(t *testing.T) { lowerLift(t, m, []int64{math.MinInt64, math.MaxInt64}, eq[int64]) })
	t.Run("float", func(t *testing.T) {
		values := []float32{math.Float32frombits(0x7fc00abc), float32(math.Inf(-1)), math.MaxFloat32}
		lowerLift(t, m, values, func(a, b float32) bool { return math.Float32bits(a) == math.Float32bits(b) })
	})
	t.Run("double", func(t *testing.T) {
		values := []float64{math.Float64frombits(0x7ff8dead00000001), math.Inf(1), -0.5}
		lowerLift(t, m, values, func(a, b float64) bool { return math.Float64bits(a) == math.Float64bits(b) })
	})
	t.Run("empty", func(t *testing.T) { lowerLift(t, m, []int64{}, eq[int64]) })
}

func TestLower_LittleEndianLayout(t *testing.T) {
	m := newMemory(t)
	l, err := Lower(m, []int32{0x01020304})
	if err != nil {
		t.Fatal(err)
	}
	data, ok := m.read(l.Ptr, 4)
	if !ok || !reflect.DeepEqual(data, []byte{0x04, 0x03, 0x02, 0x01}) {
		t.Errorf("bytes = %x", data)
	}
}

func TestLift_Errors(t *testing.T) {
	m := newMemory(t)
	l, err := Lower(m, []int16{1, 2})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Lift[int32](m, l); !errors.Is(err, tcerrors.ErrTypeMismatch) {
		t.Errorf("kind mismatch err = %v", err)
	}

	bad := List{Kind: kind.Short, Ptr: m.Size() - 2, Len: 2}
	if _, err := Lift[int16](m, bad); !errors.Is(err, tcerrors.ErrOutOfBounds) {
		t.Errorf("out of range err = %v", err)
	}
}

func TestConverters_WithEngine(t *testing.T) {
	m := newMemory(t)
	e, err := convert.New()
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Registry().RegisterAll(Converters(m)...); err != nil {
		t.Fatal(err)
	}

	l, err := convert.ConvertTo[List](e, []float64{1.25, -2})
	if err != nil {
		t.Fatal(err)
	}
	if l.Kind != kind.Double || l.Len != 2 {
		t.Errorf("list = %v", l)
	}

	back, err := convert.ConvertTo[[]float64](e, l)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, []float64{1.25, -2}) {
		t.Errorf("back = %v", back)
	}

	// the lifter for []int32 rejects a double list
	_, err = convert.ConvertTo[[]int32](e, l)
	if !errors.Is(err, tcerrors.ErrConversionFailed) || !errors.Is(err, tcerrors.ErrTypeMismatch) {
		t.Errorf("err = %v", err)
	}
	var te *tcerrors.Error
	if errors.As(err, &te) && te.Converter != "IntGuestLifter" {
		t.Errorf("Converter = %q", te.Converter)
	}
}

func TestConverters_Table(t *testing.T) {
	m := newMemory(t)
	ds := Converters(m)
	if len(ds) != 2*len(kind.All()) {
		t.Fatalf("len = %d", len(ds))
	}
	seen := map[string]bool{}
	for _, d := range ds {
		seen[d.Name] = true
	}
	for _, name := range []string{"BoolGuestLowerer", "CharGuestLifter", "DoubleGuestLowerer", "LongGuestLifter"} {
		if !seen[name] {
			t.Errorf("missing %s", name)
		}
	}
}
