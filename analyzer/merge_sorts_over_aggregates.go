package analyzer

import (
	"github.com/arcdb/sqlplan/plan"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
)

// mergeSortsOverAggregates implements spec.md §4.4's
// MergeSortsOverAggregates: a Sort directly over an UnresolvedAggregate
// folds its order into the aggregate, replacing any order the aggregate
// already carried — only the outermost ORDER BY survives.
func mergeSortsOverAggregates(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeDown(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		s, ok := node.(*plan.Sort)
		if !ok {
			return node, transform.SameTree, nil
		}
		agg, ok := s.Child.(*plan.UnresolvedAggregate)
		if !ok {
			return node, transform.SameTree, nil
		}
		return plan.NewUnresolvedAggregate(agg.Child, agg.GroupingKeys, agg.ProjectList, agg.HavingConditions, s.Order), transform.NewTree, nil
	})
}
