package analyzer

import (
	"github.com/arcdb/sqlplan/plan"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
)

// mergeHavingConditions implements spec.md §4.4's MergeHavingConditions:
// Filter directly over an UnresolvedAggregate folds its condition into the
// aggregate's HavingConditions instead of staying a separate node, so a
// HAVING clause referencing an aggregate function can be resolved as part
// of the same ResolveAggregates pass. Repeated filters stack.
func mergeHavingConditions(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeDown(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		f, ok := node.(*plan.Filter)
		if !ok {
			return node, transform.SameTree, nil
		}
		agg, ok := f.Child.(*plan.UnresolvedAggregate)
		if !ok {
			return node, transform.SameTree, nil
		}
		having := append(append([]sql.Expression{}, agg.HavingConditions...), f.Condition)
		return plan.NewUnresolvedAggregate(agg.Child, agg.GroupingKeys, agg.ProjectList, having, agg.Order), transform.NewTree, nil
	})
}
