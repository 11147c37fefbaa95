package analyzer

import (
	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/plan"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
)

// rewriteDistinctsAsAggregates implements spec.md §4.4's
// RewriteDistinctsAsAggregates: Distinct(child) becomes a GROUP BY over
// every output column of child, projecting those same columns back out,
// so ResolveAggregates is the only rule that ever needs to know how to
// deduplicate rows by grouping.
func rewriteDistinctsAsAggregates(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeDown(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		d, ok := node.(*plan.Distinct)
		if !ok || !d.Child.Resolved() {
			return node, transform.SameTree, nil
		}

		cols := d.Child.Output()
		keys := make([]sql.Expression, len(cols))
		projectList := make([]sql.Expression, len(cols))
		for i, c := range cols {
			ref := expression.NewAttributeRef(c)
			keys[i] = ref
			projectList[i] = ref
		}
		return plan.NewUnresolvedAggregate(d.Child, keys, projectList, nil, nil), transform.NewTree, nil
	})
}
