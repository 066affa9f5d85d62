// Package kind defines the primitive element kinds and their conversion rules.
//
//	Kind    Go      Size  WIT
//	───────────────────────────
//	bool    bool    1     bool
//	byte    int8    1     s8
//	char    uint16  2     u16
//	short   int16   2     s16
//	int     int32   4     s32
//	long    int64   8     s64
//	float   float32 4     f32
//	double  float64 8     f64
//
// Every kind is described once in a table; code that needs per-kind behavior
// is written generically over Primitive and instantiated from that table.
package kind
