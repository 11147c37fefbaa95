package plan

import (
	"fmt"
	"strings"

	"github.com/arcdb/sqlplan/sql"
)

// UnresolvedAggregate is the pre-rewrite shape GlobalAggregates and
// MergeHavingConditions/MergeSortsOverAggregates accumulate into: grouping
// keys, the outer projection, having conditions and an order, all still
// expressed against child's raw attributes. ResolveAggregates consumes one
// of these and produces a resolved Aggregate plus the surrounding
// Filter/Sort/Project (spec.md §4.4).
type UnresolvedAggregate struct {
	UnaryNode
	GroupingKeys     []sql.Expression
	ProjectList      []sql.Expression
	HavingConditions []sql.Expression
	Order            []SortField
}

var _ sql.Expressioner = (*UnresolvedAggregate)(nil)

func NewUnresolvedAggregate(child sql.Node, groupingKeys, projectList, havingConditions []sql.Expression, order []SortField) *UnresolvedAggregate {
	return &UnresolvedAggregate{UnaryNode{child}, groupingKeys, projectList, havingConditions, order}
}

func (a *UnresolvedAggregate) Resolved() bool { return false }

func (a *UnresolvedAggregate) Output() []sql.Attribute {
	panic("UnresolvedAggregate is a placeholder node, but Output was called")
}

// AllExpressions returns every expression this node carries, in the order
// ResolveAggregates collects aggregate functions from: project list, then
// having conditions, then order (spec.md §4.4 step 2).
func (a *UnresolvedAggregate) AllExpressions() []sql.Expression {
	n := len(a.ProjectList) + len(a.HavingConditions) + len(a.Order)
	out := make([]sql.Expression, 0, n)
	out = append(out, a.ProjectList...)
	out = append(out, a.HavingConditions...)
	for _, f := range a.Order {
		out = append(out, f.Expr)
	}
	return out
}

func (a *UnresolvedAggregate) Expressions() []sql.Expression {
	n := len(a.GroupingKeys) + len(a.AllExpressions())
	out := make([]sql.Expression, 0, n)
	out = append(out, a.GroupingKeys...)
	out = append(out, a.AllExpressions()...)
	return out
}

func (a *UnresolvedAggregate) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	want := len(a.Expressions())
	if len(exprs) != want {
		return nil, sql.ErrInvalidChildrenCount.New(a, len(exprs), want)
	}
	i := 0
	take := func(n int) []sql.Expression {
		s := exprs[i : i+n]
		i += n
		return s
	}
	keys := take(len(a.GroupingKeys))
	projectList := take(len(a.ProjectList))
	having := take(len(a.HavingConditions))
	orderExprs := take(len(a.Order))
	order := make([]SortField, len(a.Order))
	for j, e := range orderExprs {
		order[j] = SortField{Expr: e, Direction: a.Order[j].Direction}
	}
	return NewUnresolvedAggregate(a.Child, keys, projectList, having, order), nil
}

func (a *UnresolvedAggregate) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(a, len(children), 1)
	}
	return NewUnresolvedAggregate(children[0], a.GroupingKeys, a.ProjectList, a.HavingConditions, a.Order), nil
}

func (a *UnresolvedAggregate) String() string {
	return fmt.Sprintf("UnresolvedAggregate(group=%v, project=%v, having=%v)", a.GroupingKeys, a.ProjectList, a.HavingConditions)
}

// Aggregate is the resolved grouping/aggregation node ResolveAggregates
// constructs: its output is exactly the grouping attributes followed by the
// aggregation attributes (spec.md §3's invariant that no raw AttributeRef
// leaks through an aggregate boundary).
type Aggregate struct {
	UnaryNode
	GroupingAliases    []sql.Expression
	AggregationAliases []sql.Expression
}

var _ sql.Expressioner = (*Aggregate)(nil)

func NewAggregate(child sql.Node, groupingAliases, aggregationAliases []sql.Expression) *Aggregate {
	return &Aggregate{UnaryNode{child}, groupingAliases, aggregationAliases}
}

func (a *Aggregate) Resolved() bool {
	return a.Child.Resolved() &&
		expressionsResolved(a.GroupingAliases...) &&
		expressionsResolved(a.AggregationAliases...)
}

func (a *Aggregate) Output() []sql.Attribute {
	all := make([]sql.Expression, 0, len(a.GroupingAliases)+len(a.AggregationAliases))
	all = append(all, a.GroupingAliases...)
	all = append(all, a.AggregationAliases...)
	return namedExpressionsToSchema(all)
}

func (a *Aggregate) Expressions() []sql.Expression {
	all := make([]sql.Expression, 0, len(a.GroupingAliases)+len(a.AggregationAliases))
	all = append(all, a.GroupingAliases...)
	all = append(all, a.AggregationAliases...)
	return all
}

func (a *Aggregate) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	want := len(a.GroupingAliases) + len(a.AggregationAliases)
	if len(exprs) != want {
		return nil, sql.ErrInvalidChildrenCount.New(a, len(exprs), want)
	}
	return NewAggregate(a.Child, exprs[:len(a.GroupingAliases)], exprs[len(a.GroupingAliases):]), nil
}

func (a *Aggregate) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(a, len(children), 1)
	}
	return NewAggregate(children[0], a.GroupingAliases, a.AggregationAliases), nil
}

func (a *Aggregate) String() string {
	groups := make([]string, len(a.GroupingAliases))
	for i, g := range a.GroupingAliases {
		groups[i] = g.String()
	}
	aggs := make([]string, len(a.AggregationAliases))
	for i, g := range a.AggregationAliases {
		aggs[i] = g.String()
	}
	return fmt.Sprintf("Aggregate(group=[%s], agg=[%s])", strings.Join(groups, ", "), strings.Join(aggs, ", "))
}
