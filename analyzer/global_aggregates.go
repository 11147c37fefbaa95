package analyzer

import (
	"github.com/arcdb/sqlplan/plan"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
)

// globalAggregates implements spec.md §4.4's GlobalAggregates: a Project
// whose project list contains an aggregate function but carries no GROUP
// BY becomes an UnresolvedAggregate with no grouping keys, producing a
// single output row. MergeHavingConditions and MergeSortsOverAggregates
// fold any immediately enclosing Filter/Sort into it on later passes.
func globalAggregates(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeDown(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		proj, ok := node.(*plan.Project)
		if !ok || !projectListHasAggregation(proj.ProjectList) {
			return node, transform.SameTree, nil
		}
		return plan.NewUnresolvedAggregate(proj.Child, nil, proj.ProjectList, nil, nil), transform.NewTree, nil
	})
}
