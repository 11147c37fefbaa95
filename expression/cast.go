package expression

import (
	"fmt"

	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/types"
)

// Cast is the explicit coercion wrapper the type-constraint system inserts
// when it widens a child expression to satisfy a constraint (spec.md §4.3:
// "coercion inserts an explicit cast wrapper expression" rather than
// mutating the child in place). Folding a Cast over a Literal is a
// constant-folding opportunity left to a later optimization pass; this core
// only needs Cast to be resolvable and correctly typed.
type Cast struct {
	UnaryExpression
	target types.DataType
}

var _ sql.Expression = (*Cast)(nil)

// NewCast wraps child, asserting it has type target once evaluated.
func NewCast(child sql.Expression, target types.DataType) *Cast {
	return &Cast{UnaryExpression{Child: child}, target}
}

func (c *Cast) Type() types.DataType { return c.target }

func (c *Cast) IsNullable() bool { return c.Child.IsNullable() }

func (c *Cast) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(c, len(children), 1)
	}
	return NewCast(children[0], c.target), nil
}

func (c *Cast) String() string {
	return fmt.Sprintf("CAST(%s AS %s)", c.Child, c.target)
}
