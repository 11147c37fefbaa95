package types

// rank assigns every scalar kind a position in the widening order. A type
// of lower rank widens to any type of higher rank within the same
// abstract-type family (integral ranks below fractional ranks, booleans
// below integrals). Non-scalar kinds (array/map/struct/null/string) are not
// ranked here; they are handled explicitly by WidenableTo.
var rank = map[Kind]int{
	KindBoolean: 0,
	KindInt8:    1,
	KindInt16:   2,
	KindInt32:   3,
	KindInt64:   4,
	KindFloat32: 5,
	KindFloat64: 6,
}

// AbstractType classifies concrete DataTypes by capability, closed under
// the lattice exactly as spec.md §3 describes: every concrete type belongs
// to zero or more of these families, and the families nest
// (Integral/Fractional ⊂ Numeric ⊂ Ordered).
type AbstractType int

const (
	AnyType AbstractType = iota
	OrderedType
	NumericType
	IntegralType
	FractionalType
)

// IsA reports whether t belongs to the abstract type family.
func (t DataType) IsA(abstract AbstractType) bool {
	switch abstract {
	case AnyType:
		return true
	case OrderedType:
		switch t.kind {
		case KindBoolean, KindInt8, KindInt16, KindInt32, KindInt64,
			KindFloat32, KindFloat64, KindString, KindDate, KindTimestamp:
			return true
		}
		return false
	case NumericType:
		return t.IsA(IntegralType) || t.IsA(FractionalType)
	case IntegralType:
		switch t.kind {
		case KindBoolean, KindInt8, KindInt16, KindInt32, KindInt64:
			return true
		}
		return false
	case FractionalType:
		switch t.kind {
		case KindFloat32, KindFloat64:
			return true
		}
		return false
	}
	return false
}

// WidenableTo reports whether t can be implicitly coerced to target without
// loss that the lattice considers unsafe: any type widens to itself; any
// integral or fractional type widens to every numeric type of equal or
// greater rank in its own family or the fractional family; a string widens
// to any ordered scalar (mirroring spec.md's "1" + 2 example: a string is
// compatible with, but never the target of, a numeric widening); nothing
// widens to NullType except NullType itself, and NullType widens to
// anything (a null literal adapts to whatever context it appears in).
func (t DataType) WidenableTo(target DataType) bool {
	if t.Equal(target) {
		return true
	}
	if t.kind == KindNull {
		return true
	}
	if target.kind == KindNull {
		return false
	}

	tr, tOK := rank[t.kind]
	ur, uOK := rank[target.kind]
	if tOK && uOK {
		return tr <= ur
	}

	if t.kind == KindString && target.IsA(OrderedType) {
		return true
	}

	switch t.kind {
	case KindArray:
		if target.kind != KindArray {
			return false
		}
		te, _ := t.Element()
		ue, ueNullable := target.Element()
		return te.WidenableTo(ue) && (!t.elemNullable || ueNullable)
	case KindMap:
		if target.kind != KindMap {
			return false
		}
		tk, tv, _ := t.KeyValue()
		uk, uv, uvNullable := target.KeyValue()
		return tk.Equal(uk) && tv.WidenableTo(uv) && (!t.valueNullable || uvNullable)
	case KindStruct:
		if target.kind != KindStruct {
			return false
		}
		tf, uf := t.Fields(), target.Fields()
		if len(tf) != len(uf) {
			return false
		}
		for i := range tf {
			if tf[i].Name != uf[i].Name {
				return false
			}
			if !tf[i].Type.WidenableTo(uf[i].Type) {
				return false
			}
		}
		return true
	}

	return false
}

// CompatibleWith reports whether t can be implicitly coerced to target at
// all — the predicate used by the SameTypeAs constraint. It is simply
// WidenableTo, named separately because spec.md §4.3 distinguishes
// "compatible with" (a yes/no predicate driving coercion insertion) from
// "widenable to" (the lattice relation it's built from); for this lattice
// the two coincide.
func (t DataType) CompatibleWith(target DataType) bool {
	return t.WidenableTo(target)
}

// scalarOrder lists every ranked scalar kind from narrowest to widest, used
// by WidestCommonSupertype to walk upward from the narrowest input.
var scalarOrder = []Kind{
	KindBoolean, KindInt8, KindInt16, KindInt32, KindInt64, KindFloat32, KindFloat64,
}

// WidestCommonSupertype computes the least upper bound of types in the
// lattice: the narrowest type every element of types widens to. Returns
// ok=false if no common supertype exists (e.g. an ARRAY and a STRUCT).
func WidestCommonSupertype(types_ []DataType) (DataType, bool) {
	if len(types_) == 0 {
		return Null, false
	}

	widest := types_[0]
	for _, t := range types_[1:] {
		w, ok := widestPair(widest, t)
		if !ok {
			return Null, false
		}
		widest = w
	}
	return widest, true
}

func widestPair(a, b DataType) (DataType, bool) {
	if a.Equal(b) {
		return a, true
	}
	if a.kind == KindNull {
		return b, true
	}
	if b.kind == KindNull {
		return a, true
	}

	ar, aOK := rank[a.kind]
	br, bOK := rank[b.kind]
	if aOK && bOK {
		if ar >= br {
			return a, true
		}
		return b, true
	}

	if a.kind == KindString && b.IsA(OrderedType) {
		return b, true
	}
	if b.kind == KindString && a.IsA(OrderedType) {
		return a, true
	}

	if a.kind == KindArray && b.kind == KindArray {
		ae, aNullable := a.Element()
		be, bNullable := b.Element()
		widest, ok := widestPair(ae, be)
		if !ok {
			return Null, false
		}
		return NewArrayType(widest, aNullable || bNullable), true
	}

	if a.Equal(b) {
		return a, true
	}
	return Null, false
}
