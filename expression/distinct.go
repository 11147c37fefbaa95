package expression

import (
	"fmt"

	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/types"
)

// DistinctAggregateFunction wraps an Aggregation to mark that duplicate
// input values should be collapsed before aggregating, e.g.
// COUNT(DISTINCT x). spec.md §4.4/§9 records that this core recognizes the
// construct only far enough to surface ErrUnsupportedOperation once it
// reaches RewriteDistinctAggregateFunctions — the two-phase or self-join
// desugaring a real engine would need is an explicit Open Question left
// unresolved in the source.
type DistinctAggregateFunction struct {
	UnaryExpression
	inner Aggregation
}

var _ sql.Expression = (*DistinctAggregateFunction)(nil)
var _ sql.Nameable = (*DistinctAggregateFunction)(nil)

// NewDistinctAggregateFunction wraps inner as a DISTINCT aggregate.
func NewDistinctAggregateFunction(inner Aggregation) *DistinctAggregateFunction {
	return &DistinctAggregateFunction{UnaryExpression{Child: inner}, inner}
}

// Inner returns the wrapped aggregate function.
func (d *DistinctAggregateFunction) Inner() Aggregation { return d.inner }

func (d *DistinctAggregateFunction) Name() string { return d.inner.Name() }

func (d *DistinctAggregateFunction) Type() types.DataType { return d.inner.Type() }

func (d *DistinctAggregateFunction) Foldable() bool { return false }

func (d *DistinctAggregateFunction) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(d, len(children), 1)
	}
	inner, ok := children[0].(Aggregation)
	if !ok {
		return nil, fmt.Errorf("DistinctAggregateFunction child must be an Aggregation, got %T", children[0])
	}
	return NewDistinctAggregateFunction(inner), nil
}

func (d *DistinctAggregateFunction) String() string {
	return fmt.Sprintf("%s(DISTINCT %s)", d.inner.Name(), d.inner.Children()[0])
}
