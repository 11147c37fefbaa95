package analyzer

import (
	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/plan"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
)

// resolveSortReferences implements spec.md §4.4's ResolveSortReferences:
// when a Sort directly over a Project orders by a column the projection
// pruned away, reach through to the projection's child to resolve it, add
// it to a temporary wider projection below the sort, and re-project back
// down to the original column list above it. Skipped when the projection
// contains an aggregate function; ResolveAggregates owns sort handling for
// that case via MergeSortsOverAggregates.
func resolveSortReferences(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	sensitivity := a.Config.CaseSensitivity()
	return transform.NodeDown(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		sort, ok := node.(*plan.Sort)
		if !ok {
			return node, transform.SameTree, nil
		}
		proj, ok := sort.Child.(*plan.Project)
		if !ok || !proj.Child.Resolved() {
			return node, transform.SameTree, nil
		}
		if projectListHasAggregation(proj.ProjectList) {
			return node, transform.SameTree, nil
		}

		childCandidates := proj.Child.Output()
		extra := make([]sql.Expression, 0)
		newOrder := make([]plan.SortField, len(sort.Order))
		changed := false

		for i, f := range sort.Order {
			ua, ok := f.Expr.(*expression.UnresolvedAttribute)
			if !ok {
				newOrder[i] = f
				continue
			}
			matches := matchingAttributes(childCandidates, ua.Name(), ua.Qualifier(), sensitivity)
			if len(matches) == 0 {
				newOrder[i] = f
				continue
			}
			if len(matches) > 1 {
				return nil, transform.SameTree, sql.ErrAmbiguousColumn.New(ua.Name(), sql.ResolutionCandidates(attributeNames(matches)))
			}
			ref := expression.NewAttributeRef(matches[0])
			newOrder[i] = plan.SortField{Expr: ref, Direction: f.Direction}
			changed = true
			if !attributeInProjectList(proj.ProjectList, matches[0]) {
				extra = append(extra, ref)
			}
		}

		if !changed {
			return node, transform.SameTree, nil
		}

		widened := append(append([]sql.Expression{}, proj.ProjectList...), extra...)
		widenedProj := plan.NewProject(widened, proj.Child)
		widenedSort := plan.NewSort(newOrder, widenedProj)
		if len(extra) == 0 {
			return widenedSort, transform.NewTree, nil
		}
		return plan.NewProject(proj.ProjectList, widenedSort), transform.NewTree, nil
	})
}

func projectListHasAggregation(exprs []sql.Expression) bool {
	for _, e := range exprs {
		found := false
		transform.InspectExpr(e, func(e sql.Expression) bool {
			if _, ok := e.(expression.Aggregation); ok {
				found = true
				return false
			}
			return true
		})
		if found {
			return true
		}
	}
	return false
}

func attributeInProjectList(exprs []sql.Expression, attr sql.Attribute) bool {
	for _, e := range exprs {
		if named, ok := e.(sql.NamedExpression); ok && named.Id() == attr.Id {
			return true
		}
	}
	return false
}
