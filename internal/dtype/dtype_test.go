package dtype

import "testing"

func TestCategoriesComposeNumeric(t *testing.T) {
	for _, k := range []Kind{U8, I32, I64, U64, USize, F32, F64} {
		if !InCategory(k, CategoryNumeric) {
			t.Errorf("%s should be numeric", k)
		}
	}
	if InCategory(Bool, CategoryNumeric) {
		t.Errorf("bool should not be numeric")
	}
	if InCategory(String, CategoryNumeric) {
		t.Errorf("string should not be numeric")
	}
}

func TestHashableExcludesFloatsAndOptions(t *testing.T) {
	if InCategory(F64, CategoryHashable) {
		t.Errorf("f64 should not be hashable")
	}
	if InCategory(OptI32, CategoryHashable) {
		t.Errorf("option<i32> should not be hashable")
	}
	if !InCategory(I64, CategoryHashable) {
		t.Errorf("i64 should be hashable")
	}
	if !InCategory(String, CategoryHashable) {
		t.Errorf("string should be hashable")
	}
}

func TestTimeRelatedCoversAllUnitsPlusTimedelta(t *testing.T) {
	for _, k := range []Kind{DatetimeMs, DatetimeUs, DatetimeNs, Timedelta} {
		if !InCategory(k, CategoryTimeRelated) {
			t.Errorf("%s should be time-related", k)
		}
	}
}

func TestCastableExcludesObjectAndVecUSize(t *testing.T) {
	if InCategory(Object, CategoryCastable) {
		t.Errorf("object should not be castable")
	}
	if InCategory(VecUSize, CategoryCastable) {
		t.Errorf("vec<usize> should not be castable")
	}
	if !InCategory(F64, CategoryCastable) {
		t.Errorf("f64 should be castable")
	}
}

func TestStringUnknownFallback(t *testing.T) {
	var k Kind = 255
	if k.String() != "unknown" {
		t.Errorf("expected unknown fallback, got %s", k.String())
	}
}
