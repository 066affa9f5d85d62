// Package typeconv converts values between runtime types through a registry
// of ranked converters.
//
// # Architecture Overview
//
//	typeconv/            Typed services keyed by the type they manage
//	├── convert/         Descriptor registry, selection and the Engine
//	├── array/           Primitive containers, wrap/unwrap and list conversion
//	├── kind/            The primitive kind table and numeric conversion rules
//	├── guest/           Primitive arrays in WebAssembly linear memory
//	├── errors/          Structured error types for debugging
//	└── cmd/typeconv/    Command line inspector
//
// # Quick Start
//
//	e, err := convert.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c, err := convert.ConvertTo[*array.Array[int32]](e, []int32{1, 2, 3})
//	c.Add(4)
//
//	ints, err := convert.ConvertTo[[]int32](e, c)        // [1 2 3 4]
//	longs, err := convert.ConvertTo[[]int64](e, []any{1, 2.9}) // [1 2]
//
// # Selection
//
// Every conversion runs exactly one converter: the highest-priority match,
// with ties going to the more specific declared types and then to the
// earlier registration. A failure of that converter is reported as is.
//
// # Kinds
//
//	bool  byte  char    short  int    long   float    double
//	bool  int8  uint16  int16  int32  int64  float32  float64
//
// # Services
//
// Services registers components by the type they manage. The conversion
// engine manages convert.Descriptor:
//
//	svcs := typeconv.NewServices()
//	_ = svcs.Register(e)
//	eng, _ := typeconv.ServiceFor[*convert.Engine](svcs, reflect.TypeFor[convert.Descriptor]())
package typeconv
