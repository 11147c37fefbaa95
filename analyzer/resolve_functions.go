package analyzer

import (
	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
	"github.com/arcdb/sqlplan/types"
)

// resolveFunctions implements spec.md §4.4's ResolveFunctions: for each
// UnresolvedFunction whose args are all resolved, look up its FunctionInfo
// in the registry and build the bound expression. Handles the count(*)
// special cases and distinct-aggregate wrapping.
func resolveFunctions(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeExprsUp(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		fn, ok := e.(*expression.UnresolvedFunction)
		if !ok {
			return e, transform.SameTree, nil
		}

		args := fn.Children()
		hasStar := false
		for _, arg := range args {
			if _, ok := arg.(*expression.Star); ok {
				hasStar = true
			}
		}

		if hasStar {
			if fn.Name() != "count" {
				return nil, transform.SameTree, sql.ErrAnalysis.New("only count() may take * as an argument")
			}
			if fn.Distinct() {
				return nil, transform.SameTree, sql.ErrAnalysis.New("count(distinct *) is not valid")
			}
			return expression.NewCount(expression.NewLiteral(int64(1), types.Int64)), transform.NewTree, nil
		}

		for _, arg := range args {
			if !arg.Resolved() {
				return e, transform.SameTree, nil
			}
		}

		info, err := a.Catalog.LookupFunction(fn.Name(), a.Config.CaseSensitivity())
		if err != nil {
			return nil, transform.SameTree, err
		}

		built, err := info.Build(args)
		if err != nil {
			return nil, transform.SameTree, err
		}

		if fn.Distinct() {
			agg, ok := built.(expression.Aggregation)
			if !ok {
				return nil, transform.SameTree, sql.ErrAnalysis.New("DISTINCT is only valid on aggregate functions")
			}
			return expression.NewDistinctAggregateFunction(agg), transform.NewTree, nil
		}

		return built, transform.NewTree, nil
	})
}
