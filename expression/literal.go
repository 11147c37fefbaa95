package expression

import (
	"fmt"

	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/types"
)

// Literal is a constant value of a known type. Literals are always
// resolved and always foldable — they carry no attribute reference and no
// non-determinism.
type Literal struct {
	value    interface{}
	dataType types.DataType
}

var _ sql.Expression = (*Literal)(nil)

// NewLiteral constructs a Literal of the given value and type.
func NewLiteral(value interface{}, dataType types.DataType) *Literal {
	return &Literal{value: value, dataType: dataType}
}

// Value returns the literal's underlying Go value.
func (l *Literal) Value() interface{} { return l.value }

func (l *Literal) Resolved() bool { return true }

func (l *Literal) Type() types.DataType { return l.dataType }

func (l *Literal) IsNullable() bool { return l.value == nil }

func (l *Literal) Foldable() bool { return true }

func (l *Literal) Children() []sql.Expression { return nil }

func (l *Literal) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenCount.New(l, len(children), 0)
	}
	return l, nil
}

func (l *Literal) String() string {
	if l.value == nil {
		return "NULL"
	}
	if l.dataType.Kind() == types.KindString {
		return fmt.Sprintf("%q", l.value)
	}
	return fmt.Sprintf("%v", l.value)
}
