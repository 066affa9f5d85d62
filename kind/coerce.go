package kind

import (
	"math"
	"reflect"
)

// Unbox returns v as T only when its dynamic type is exactly T.
func Unbox[T Primitive](v any) (T, bool) {
	t, ok := v.(T)
	return t, ok
}

// Coerce converts a boxed value to T following the kind's numeric conversion
// rules:
//
//   - integral to integral wraps to the target width (two's complement)
//   - floating to long truncates toward zero, saturating at the long range
//   - floating to int, short, byte or char truncates toward zero saturating
//     at the int range, then wraps to the target width
//   - NaN converts to zero for every integral target
//   - any numeric value converts to float or double by rounding to nearest
//   - bool accepts only boolean values and is never produced from or
//     converted to a number
//
// Named types are accepted by their underlying Go kind. Non-numeric values
// report false.
func Coerce[T Primitive](v any) (T, bool) {
	if t, ok := v.(T); ok {
		return t, true
	}

	var zero T
	if v == nil {
		return zero, false
	}

	rv := reflect.ValueOf(v)
	target := For[T]()

	if target == Bool {
		if rv.Kind() == reflect.Bool {
			return any(rv.Bool()).(T), true
		}
		return zero, false
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromInt[T](rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUint[T](rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return fromFloat[T](rv.Float()), true
	}
	return zero, false
}

func fromInt[T Primitive](i int64) T {
	var out T
	switch p := any(&out).(type) {
	case *int8:
		*p = int8(i)
	case *uint16:
		*p = uint16(i)
	case *int16:
		*p = int16(i)
	case *int32:
		*p = int32(i)
	case *int64:
		*p = i
	case *float32:
		*p = float32(i)
	case *float64:
		*p = float64(i)
	}
	return out
}

func fromUint[T Primitive](u uint64) T {
	var out T
	switch p := any(&out).(type) {
	case *float32:
		*p = float32(u)
	case *float64:
		*p = float64(u)
	default:
		return fromInt[T](int64(u))
	}
	return out
}

func fromFloat[T Primitive](f float64) T {
	var out T
	switch p := any(&out).(type) {
	case *float32:
		*p = float32(f)
	case *float64:
		*p = f
	case *int64:
		*p = saturateInt64(f)
	default:
		return fromInt[T](int64(saturateInt32(f)))
	}
	return out
}

func saturateInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

func saturateInt32(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}
