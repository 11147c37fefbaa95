package types

import (
	"fmt"

	"github.com/spf13/cast"
)

// Coerce converts a folded literal value from its native Go representation
// to the Go representation target expects. The analyzer's constraint
// evaluator does not call it: coercions there always insert an explicit
// Cast expression (e.g. "1" + 2 becomes Cast("1", INT) + 2), leaving the
// conversion to evaluation.
//
// Grounded on the teacher's numberTypeImpl.Convert (sql/numbertype.go),
// which performs the identical dispatch over spf13/cast's ToXE helpers.
func Coerce(v interface{}, target DataType) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	switch target.kind {
	case KindBoolean:
		return cast.ToBoolE(v)
	case KindInt8:
		return cast.ToInt8E(v)
	case KindInt16:
		return cast.ToInt16E(v)
	case KindInt32:
		return cast.ToInt32E(v)
	case KindInt64:
		return cast.ToInt64E(v)
	case KindFloat32:
		return cast.ToFloat32E(v)
	case KindFloat64:
		return cast.ToFloat64E(v)
	case KindString:
		return cast.ToStringE(v)
	case KindDate, KindTimestamp:
		return cast.ToTimeE(v)
	default:
		return nil, fmt.Errorf("types: cannot coerce literal value to %s", target)
	}
}
