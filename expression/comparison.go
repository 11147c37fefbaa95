package expression

import (
	"fmt"

	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/types"
)

// Comparison is implemented by every binary predicate expression; the
// type-constraint system requires SameType(Left, Right) for all of them
// (spec.md §4.3) and they all share Boolean as their result type.
//
// Grounded on the teacher's comparison.go, trimmed of collation/interval
// handling that doesn't apply to this core's closed DataType variant.
type Comparison interface {
	sql.Expression
	Operator() string
	LeftChild() sql.Expression
	RightChild() sql.Expression
}

type comparisonBase struct {
	BinaryExpression
	op string
}

func (c *comparisonBase) Operator() string { return c.op }

func (c *comparisonBase) LeftChild() sql.Expression { return c.Left }

func (c *comparisonBase) RightChild() sql.Expression { return c.Right }

func (c *comparisonBase) Type() types.DataType { return types.Boolean }

func (c *comparisonBase) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.op, c.Right)
}

// Equals implements `=`.
type Equals struct{ comparisonBase }

var _ Comparison = (*Equals)(nil)

func NewEquals(left, right sql.Expression) *Equals {
	return &Equals{comparisonBase{BinaryExpression{Left: left, Right: right}, "="}}
}

func (e *Equals) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenCount.New(e, len(children), 2)
	}
	return NewEquals(children[0], children[1]), nil
}

// GreaterThan implements `>`.
type GreaterThan struct{ comparisonBase }

var _ Comparison = (*GreaterThan)(nil)

func NewGreaterThan(left, right sql.Expression) *GreaterThan {
	return &GreaterThan{comparisonBase{BinaryExpression{Left: left, Right: right}, ">"}}
}

func (g *GreaterThan) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenCount.New(g, len(children), 2)
	}
	return NewGreaterThan(children[0], children[1]), nil
}

// LessThan implements `<`.
type LessThan struct{ comparisonBase }

var _ Comparison = (*LessThan)(nil)

func NewLessThan(left, right sql.Expression) *LessThan {
	return &LessThan{comparisonBase{BinaryExpression{Left: left, Right: right}, "<"}}
}

func (l *LessThan) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenCount.New(l, len(children), 2)
	}
	return NewLessThan(children[0], children[1]), nil
}

// And/Or implement the boolean connectives. ResolveAggregates uses And to
// join the HAVING conditions it rewrites, and ResolveNaturalJoins to join
// its equi-join conditions.
type And struct{ BinaryExpression }

var _ sql.Expression = (*And)(nil)

func NewAnd(left, right sql.Expression) *And {
	return &And{BinaryExpression{Left: left, Right: right}}
}

func (a *And) Type() types.DataType { return types.Boolean }

func (a *And) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenCount.New(a, len(children), 2)
	}
	return NewAnd(children[0], children[1]), nil
}

func (a *And) String() string { return fmt.Sprintf("(%s AND %s)", a.Left, a.Right) }

type Or struct{ BinaryExpression }

var _ sql.Expression = (*Or)(nil)

func NewOr(left, right sql.Expression) *Or {
	return &Or{BinaryExpression{Left: left, Right: right}}
}

func (o *Or) Type() types.DataType { return types.Boolean }

func (o *Or) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenCount.New(o, len(children), 2)
	}
	return NewOr(children[0], children[1]), nil
}

func (o *Or) String() string { return fmt.Sprintf("(%s OR %s)", o.Left, o.Right) }
