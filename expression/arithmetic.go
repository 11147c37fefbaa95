package expression

import (
	"fmt"

	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/types"
)

// ArithmeticOp is implemented by every binary arithmetic expression kind;
// the type-constraint system (package constraint) dispatches SameSubtypesOf
// over an ArithmeticOp's children uniformly regardless of which operator it
// is, mirroring the teacher's own ArithmeticOp grouping
// (sql/expression/plus.go).
type ArithmeticOp interface {
	sql.Expression
	Operator() string
	LeftChild() sql.Expression
	RightChild() sql.Expression
	SetType(types.DataType)
}

type arithmeticBase struct {
	BinaryExpression
	op       string
	dataType types.DataType
}

func (a *arithmeticBase) Operator() string { return a.op }

func (a *arithmeticBase) LeftChild() sql.Expression { return a.Left }

func (a *arithmeticBase) RightChild() sql.Expression { return a.Right }

func (a *arithmeticBase) Type() types.DataType { return a.dataType }

func (a *arithmeticBase) SetType(t types.DataType) { a.dataType = t }

func (a *arithmeticBase) String() string {
	return fmt.Sprintf("(%s %s %s)", a.Left, a.op, a.Right)
}

// Plus implements the `+` operator. Its type constraint is
// SameSubtypesOf(NumericType, Left, Right) (spec.md §4.3): a string operand
// is accepted only when the other operand is already numeric, matching
// PostgreSQL's "1" + 2 but rejecting "1" + "2".
type Plus struct{ arithmeticBase }

var _ ArithmeticOp = (*Plus)(nil)

func NewPlus(left, right sql.Expression) *Plus {
	return &Plus{arithmeticBase{BinaryExpression{Left: left, Right: right}, "+", types.Null}}
}

func (p *Plus) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenCount.New(p, len(children), 2)
	}
	np := NewPlus(children[0], children[1])
	np.dataType = p.dataType
	return np, nil
}

// Minus implements the `-` operator.
type Minus struct{ arithmeticBase }

var _ ArithmeticOp = (*Minus)(nil)

func NewMinus(left, right sql.Expression) *Minus {
	return &Minus{arithmeticBase{BinaryExpression{Left: left, Right: right}, "-", types.Null}}
}

func (m *Minus) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenCount.New(m, len(children), 2)
	}
	nm := NewMinus(children[0], children[1])
	nm.dataType = m.dataType
	return nm, nil
}

// Mult implements the `*` operator.
type Mult struct{ arithmeticBase }

var _ ArithmeticOp = (*Mult)(nil)

func NewMult(left, right sql.Expression) *Mult {
	return &Mult{arithmeticBase{BinaryExpression{Left: left, Right: right}, "*", types.Null}}
}

func (m *Mult) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenCount.New(m, len(children), 2)
	}
	nm := NewMult(children[0], children[1])
	nm.dataType = m.dataType
	return nm, nil
}
