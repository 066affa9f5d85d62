package errors

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:      PhaseList,
				Kind:       KindTypeMismatch,
				Path:       []string{"[2]"},
				InputType:  "string",
				OutputType: "int32",
				Converter:  "IntListConverter",
				Detail:     "element is not numeric",
			},
			contains: []string{"[list]", "type_mismatch", "at [2]", "string -> int32", "via IntListConverter", "element is not numeric"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseSelect,
				Kind:  KindNoConverter,
			},
			contains: []string{"[select]", "no_converter"},
		},
		{
			name: "input type only",
			err: &Error{
				Phase:     PhaseUnwrap,
				Kind:      KindTypeMismatch,
				InputType: "float64",
			},
			contains: []string{"input float64"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseConvert,
				Kind:   KindConversionFailed,
				Detail: "converter blew up",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[convert]", "conversion_failed", "converter blew up", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseConvert,
		Kind:  KindConversionFailed,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not reach cause through the chain")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseList,
		Kind:  KindTypeMismatch,
		Path:  []string{"[0]"},
	}

	if !err.Is(&Error{Phase: PhaseList, Kind: KindTypeMismatch}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseUnwrap, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseList, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrTypeMismatch) {
		t.Error("sentinel should match any phase")
	}
	if errors.Is(err, ErrNoConverter) {
		t.Error("sentinel of another kind should not match")
	}
}

func TestError_IsThroughWrapping(t *testing.T) {
	inner := TypeMismatch(PhaseList, 1, reflect.TypeOf(""), "int32")
	outer := ConversionFailed(reflect.TypeOf([]any{}), reflect.TypeOf([]int32{}), "IntSliceListConverter", inner)

	if !errors.Is(outer, ErrConversionFailed) {
		t.Error("outer should be conversion_failed")
	}
	if !errors.Is(outer, ErrTypeMismatch) {
		t.Error("type_mismatch cause should be reachable")
	}

	var target *Error
	if !errors.As(outer, &target) || target.Kind != KindConversionFailed {
		t.Errorf("errors.As returned %v", target)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseList, KindTypeMismatch).
		Index(3).
		Types(reflect.TypeOf(""), reflect.TypeOf(int32(0))).
		Converter("IntListConverter").
		Value("abc").
		Cause(cause).
		Detail("expected %s, got %s", "number", "text").
		Build()

	if err.Phase != PhaseList {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseList)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 1 || err.Path[0] != "[3]" {
		t.Errorf("Path = %v, want [[3]]", err.Path)
	}
	if err.InputType != "string" || err.OutputType != "int32" {
		t.Errorf("InputType=%q OutputType=%q", err.InputType, err.OutputType)
	}
	if err.Converter != "IntListConverter" {
		t.Errorf("Converter = %q", err.Converter)
	}
	if err.Value != "abc" {
		t.Errorf("Value = %v, want abc", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected number, got text" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestBuilder_PathAndNames(t *testing.T) {
	err := New(PhaseLift, KindOutOfBounds).
		Path("list", "[4]").
		InputType("GuestList").
		OutputType("[]int32").
		Detail("plain detail").
		Build()

	if got := strings.Join(err.Path, "."); got != "list.[4]" {
		t.Errorf("Path = %q", got)
	}
	if !strings.Contains(err.Error(), "GuestList -> []int32") {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Detail != "plain detail" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	intSlice := reflect.TypeOf([]int32{})
	strType := reflect.TypeOf("")

	t.Run("NoConverterFound", func(t *testing.T) {
		err := NoConverterFound(strType, intSlice)
		if err.Kind != KindNoConverter || err.Phase != PhaseSelect {
			t.Errorf("Kind=%v Phase=%v", err.Kind, err.Phase)
		}
		if err.InputType != "string" || err.OutputType != "[]int32" {
			t.Errorf("InputType=%q OutputType=%q", err.InputType, err.OutputType)
		}
	})

	t.Run("NoConverterFound nil input", func(t *testing.T) {
		err := NoConverterFound(nil, intSlice)
		if err.InputType != "nil" {
			t.Errorf("InputType = %q, want nil", err.InputType)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseUnwrap, 7, strType, "float64")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v", err.Kind)
		}
		if !strings.Contains(err.Error(), "[7]") {
			t.Errorf("Error() = %q, should name index", err.Error())
		}
	})

	t.Run("ConversionFailed", func(t *testing.T) {
		cause := errors.New("boom")
		err := ConversionFailed(strType, intSlice, "Broken", cause)
		if err.Kind != KindConversionFailed || err.Converter != "Broken" {
			t.Errorf("Kind=%v Converter=%q", err.Kind, err.Converter)
		}
		if !errors.Is(err, cause) {
			t.Error("cause not preserved")
		}
	})

	t.Run("InvalidArgument", func(t *testing.T) {
		err := InvalidArgument(PhaseRegister, "name is empty")
		if err.Kind != KindInvalidArgument || err.Detail != "name is empty" {
			t.Errorf("Kind=%v Detail=%q", err.Kind, err.Detail)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseUnwrap, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v", err.Kind)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("Registration", func(t *testing.T) {
		cause := InvalidArgument(PhaseRegister, "nil convert func")
		err := Registration("Dup", cause)
		if err.Kind != KindRegistration || err.Converter != "Dup" {
			t.Errorf("Kind=%v Converter=%q", err.Kind, err.Converter)
		}
		if !errors.Is(err, ErrInvalidArgument) {
			t.Error("cause kind should be reachable")
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseLower, 1024, 8)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v", err.Kind)
		}
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("io")
		err := Wrap(PhaseConfig, KindInvalidArgument, cause, "read config")
		if err.Cause != cause || err.Phase != PhaseConfig {
			t.Errorf("Wrap = %+v", err)
		}
	})
}
