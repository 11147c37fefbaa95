package analyzer

import (
	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/plan"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
	"github.com/spf13/cast"
)

// resolveOrderbyLiterals implements SPEC_FULL.md's ResolveOrderbyLiterals
// supplement: a bare integer literal in an ORDER BY position refers to the
// Nth entry of the enclosing projection, and a bare unqualified identifier
// matching a projected alias refers to that alias, instead of being looked
// up as an ordinary column reference.
func resolveOrderbyLiterals(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	sensitivity := a.Config.CaseSensitivity()
	return transform.NodeDown(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		sort, ok := node.(*plan.Sort)
		if !ok {
			return node, transform.SameTree, nil
		}
		proj, ok := sort.Child.(*plan.Project)
		if !ok {
			return node, transform.SameTree, nil
		}

		changed := false
		order := make([]plan.SortField, len(sort.Order))
		for i, f := range sort.Order {
			resolved, ok, err := resolveOrderbyLiteral(f.Expr, proj.ProjectList, sensitivity)
			if err != nil {
				return nil, transform.SameTree, err
			}
			if !ok {
				order[i] = f
				continue
			}
			order[i] = plan.SortField{Expr: resolved, Direction: f.Direction}
			changed = true
		}
		if !changed {
			return node, transform.SameTree, nil
		}
		return plan.NewSort(order, sort.Child), transform.NewTree, nil
	})
}

func resolveOrderbyLiteral(e sql.Expression, projectList []sql.Expression, sensitivity sql.CaseSensitivity) (sql.Expression, bool, error) {
	if lit, ok := e.(*expression.Literal); ok {
		n, err := cast.ToIntE(lit.Value())
		if err != nil {
			return nil, false, nil
		}
		if n < 1 || n > len(projectList) {
			return nil, false, sql.ErrAnalysis.New("order by position is not in select list")
		}
		return projectList[n-1], true, nil
	}

	ua, ok := e.(*expression.UnresolvedAttribute)
	if !ok || ua.Qualifier() != "" {
		return nil, false, nil
	}
	for _, p := range projectList {
		named, ok := p.(sql.NamedExpression)
		if !ok {
			continue
		}
		if sql.NamesEqual(named.Name(), ua.Name(), sensitivity) {
			return named, true, nil
		}
	}
	return nil, false, nil
}
