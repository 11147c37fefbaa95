package analyzer

import (
	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
)

// rewriteDistinctAggregateFunctions implements spec.md §4.4's
// RewriteDistinctAggregateFunctions. This module's current policy is
// non-support: any DistinctAggregateFunction still present at this point
// in the resolution batch fails analysis rather than being rewritten into
// a two-phase or self-join plan.
func rewriteDistinctAggregateFunctions(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	var found *expression.DistinctAggregateFunction
	transform.InspectExpressions(n, func(e sql.Expression) bool {
		if d, ok := e.(*expression.DistinctAggregateFunction); ok {
			found = d
			return false
		}
		return true
	})
	if found != nil {
		return nil, transform.SameTree, sql.ErrUnsupportedOperation.New("DISTINCT aggregate function " + found.Name())
	}
	return n, transform.SameTree, nil
}
