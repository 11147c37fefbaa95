package analyzer

import (
	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/plan"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
)

// expandStars implements spec.md §4.4's ExpandStars: top-down on resolved
// projections, replace each Star(qualifier) with the child plan's output,
// filtered to the qualifier's columns when one is given.
func expandStars(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeDown(n, func(n sql.Node) (sql.Node, transform.TreeIdentity, error) {
		proj, ok := n.(*plan.Project)
		if !ok || !proj.Child.Resolved() {
			return n, transform.SameTree, nil
		}

		hasStar := false
		for _, e := range proj.ProjectList {
			if _, ok := e.(*expression.Star); ok {
				hasStar = true
				break
			}
		}
		if !hasStar {
			return n, transform.SameTree, nil
		}

		childOut := proj.Child.Output()
		newList := make([]sql.Expression, 0, len(proj.ProjectList))
		for _, e := range proj.ProjectList {
			star, ok := e.(*expression.Star)
			if !ok {
				newList = append(newList, e)
				continue
			}
			for _, attr := range childOut {
				if star.Qualifier() != "" && !sql.NamesEqual(attr.Qualifier, star.Qualifier(), a.Config.CaseSensitivity()) {
					continue
				}
				newList = append(newList, expression.NewAttributeRef(attr))
			}
		}

		return plan.NewProject(newList, proj.Child), transform.NewTree, nil
	})
}
