package arrok

// The option<T> element kinds (spec §3.1) need an explicit validity tag
// rather than a sentinel value, since e.g. every int64 bit pattern is a
// legal i64. Floats instead use NaN as their "none" (spec §3.1/§4.6).

// OptBool is one option<bool> element.
type OptBool struct {
	Valid bool
	V     bool
}

// OptI32 is one option<i32> element.
type OptI32 struct {
	Valid bool
	V     int32
}

// OptI64 is one option<i64> element.
type OptI64 struct {
	Valid bool
	V     int64
}

// OptF32 is one option<f32> element.
type OptF32 struct {
	Valid bool
	V     float32
}

// OptF64 is one option<f64> element.
type OptF64 struct {
	Valid bool
	V     float64
}

// OptUSize is one option<usize> element, the index dtype used by
// Select's fancy-indexing-with-missing mode (spec §4.6).
type OptUSize struct {
	Valid bool
	V     int
}

// Some/None constructors, one per option kind, used throughout
// construction and tests.

func SomeBool(v bool) OptBool   { return OptBool{Valid: true, V: v} }
func NoneBool() OptBool         { return OptBool{} }
func SomeI32(v int32) OptI32    { return OptI32{Valid: true, V: v} }
func NoneI32() OptI32           { return OptI32{} }
func SomeI64(v int64) OptI64    { return OptI64{Valid: true, V: v} }
func NoneI64() OptI64           { return OptI64{} }
func SomeF32(v float32) OptF32  { return OptF32{Valid: true, V: v} }
func NoneF32() OptF32           { return OptF32{} }
func SomeF64(v float64) OptF64  { return OptF64{Valid: true, V: v} }
func NoneF64() OptF64           { return OptF64{} }
func SomeUSize(v int) OptUSize  { return OptUSize{Valid: true, V: v} }
func NoneUSize() OptUSize       { return OptUSize{} }
