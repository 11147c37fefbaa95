package types

import "testing"

func TestWidenableTo(t *testing.T) {
	cases := []struct {
		from, to DataType
		want     bool
	}{
		{Int32, Int64, true},
		{Int64, Int32, false},
		{Int32, Float64, true},
		{Float64, Int32, false},
		{Null, String, true},
		{String, Null, false},
		{String, Int32, true},
		{Int32, String, false},
		{Boolean, Int8, true},
	}

	for _, c := range cases {
		got := c.from.WidenableTo(c.to)
		if got != c.want {
			t.Errorf("%s.WidenableTo(%s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestWidestCommonSupertype(t *testing.T) {
	got, ok := WidestCommonSupertype([]DataType{Int32, Int64, Float32})
	if !ok || !got.Equal(Float32) {
		t.Fatalf("got %s, ok=%v, want FLOAT32", got, ok)
	}

	_, ok = WidestCommonSupertype([]DataType{NewStructType(StructField{Name: "a", Type: Int32}), NewArrayType(Int32, false)})
	if ok {
		t.Fatalf("expected no common supertype between STRUCT and ARRAY")
	}
}

func TestAbstractTypeMembership(t *testing.T) {
	if !Int32.IsA(NumericType) || !Int32.IsA(IntegralType) {
		t.Fatalf("INT32 should be numeric and integral")
	}
	if Int32.IsA(FractionalType) {
		t.Fatalf("INT32 should not be fractional")
	}
	if !Float64.IsA(NumericType) || !Float64.IsA(FractionalType) {
		t.Fatalf("FLOAT64 should be numeric and fractional")
	}
	if String.IsA(NumericType) {
		t.Fatalf("STRING should not be numeric")
	}
	if !String.IsA(OrderedType) {
		t.Fatalf("STRING should be ordered")
	}
}
