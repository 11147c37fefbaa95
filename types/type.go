// Package types implements the finite type lattice described in spec.md
// §3: a closed variant of concrete data types, a widenable-to partial
// order over them, a compatibility predicate, and the abstract type
// predicates (Ordered, Numeric, Integral, Fractional) used by the
// type-constraint combinators in package constraint.
//
// Concrete type tags are grounded on the teacher's own NumberType/
// StringType wrappers (sql/numbertype.go, sql/stringtype.go), which back
// their enumeration on vitess's query.Type; this lattice uses a private
// rank-based ordering instead (lattice.go) since it has no wire protocol
// to serialize against.
package types

// Kind is the discriminant of the closed DataType variant.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindString
	KindDate
	KindTimestamp
	KindArray
	KindMap
	KindStruct
)

// StructField is one named, typed, nullable member of a StructType.
type StructField struct {
	Name     string
	Type     DataType
	Nullable bool
}

// DataType is the closed variant from spec.md §3. Concrete instances are
// produced by the package-level constructors below (Int32, String, ...) or
// by NewArrayType/NewMapType/NewStructType for the parameterized kinds.
// DataType values are immutable and comparable with Equal.
type DataType struct {
	kind Kind

	// ArrayType
	elem          *DataType
	elemNullable  bool
	// MapType
	key            *DataType
	value          *DataType
	valueNullable  bool
	// StructType
	fields []StructField
}

func (t DataType) Kind() Kind { return t.kind }

// Null, Boolean, ... are the singleton scalar DataTypes. They are value
// types and safe to share.
var (
	Null      = DataType{kind: KindNull}
	Boolean   = DataType{kind: KindBoolean}
	Int8      = DataType{kind: KindInt8}
	Int16     = DataType{kind: KindInt16}
	Int32     = DataType{kind: KindInt32}
	Int64     = DataType{kind: KindInt64}
	Float32   = DataType{kind: KindFloat32}
	Float64   = DataType{kind: KindFloat64}
	String    = DataType{kind: KindString}
	Date      = DataType{kind: KindDate}
	Timestamp = DataType{kind: KindTimestamp}
)

// NewArrayType constructs an ArrayType(element, elementNullable).
func NewArrayType(elem DataType, elemNullable bool) DataType {
	return DataType{kind: KindArray, elem: &elem, elemNullable: elemNullable}
}

// Element returns the element type of an ArrayType; panics on any other kind.
func (t DataType) Element() (DataType, bool) {
	if t.kind != KindArray {
		panic("Element called on non-array DataType")
	}
	return *t.elem, t.elemNullable
}

// NewMapType constructs a MapType(key, value, valueNullable).
func NewMapType(key, value DataType, valueNullable bool) DataType {
	return DataType{kind: KindMap, key: &key, value: &value, valueNullable: valueNullable}
}

// KeyValue returns the key and value types of a MapType; panics on any
// other kind.
func (t DataType) KeyValue() (key, value DataType, valueNullable bool) {
	if t.kind != KindMap {
		panic("KeyValue called on non-map DataType")
	}
	return *t.key, *t.value, t.valueNullable
}

// NewStructType constructs a StructType(fields).
func NewStructType(fields ...StructField) DataType {
	return DataType{kind: KindStruct, fields: fields}
}

// Fields returns the fields of a StructType; panics on any other kind.
func (t DataType) Fields() []StructField {
	if t.kind != KindStruct {
		panic("Fields called on non-struct DataType")
	}
	return t.fields
}

// Equal reports whether two DataTypes are structurally identical.
func (t DataType) Equal(other DataType) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindArray:
		return t.elemNullable == other.elemNullable && t.elem.Equal(*other.elem)
	case KindMap:
		return t.valueNullable == other.valueNullable && t.key.Equal(*other.key) && t.value.Equal(*other.value)
	case KindStruct:
		if len(t.fields) != len(other.fields) {
			return false
		}
		for i, f := range t.fields {
			g := other.fields[i]
			if f.Name != g.Name || f.Nullable != g.Nullable || !f.Type.Equal(g.Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (t DataType) String() string {
	switch t.kind {
	case KindNull:
		return "NULL"
	case KindBoolean:
		return "BOOLEAN"
	case KindInt8:
		return "TINYINT"
	case KindInt16:
		return "SMALLINT"
	case KindInt32:
		return "INT"
	case KindInt64:
		return "BIGINT"
	case KindFloat32:
		return "FLOAT"
	case KindFloat64:
		return "DOUBLE"
	case KindString:
		return "STRING"
	case KindDate:
		return "DATE"
	case KindTimestamp:
		return "TIMESTAMP"
	case KindArray:
		return "ARRAY<" + t.elem.String() + ">"
	case KindMap:
		k, v, _ := t.KeyValue()
		return "MAP<" + k.String() + ", " + v.String() + ">"
	case KindStruct:
		return "STRUCT"
	default:
		return "UNKNOWN"
	}
}
