package analyzer

import (
	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
)

// resolveReferences implements spec.md §4.4's ResolveReferences: bottom-up
// over plans whose children are resolved, for each UnresolvedAttribute
// compute candidate attributes from the union of children's outputs.
// Zero candidates leaves the node unresolved for a later pass; more than
// one fails AmbiguousColumn.
func resolveReferences(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	sensitivity := a.Config.CaseSensitivity()
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		exprsNode, ok := node.(sql.Expressioner)
		if !ok {
			return node, transform.SameTree, nil
		}
		for _, c := range node.Children() {
			if !c.Resolved() {
				return node, transform.SameTree, nil
			}
		}

		var candidates sql.Schema
		for _, c := range node.Children() {
			candidates = append(candidates, c.Output()...)
		}

		exprs := exprsNode.Expressions()
		newExprs := make([]sql.Expression, len(exprs))
		changed := false
		for i, e := range exprs {
			ne, same, err := transform.Expr(e, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
				ua, ok := e.(*expression.UnresolvedAttribute)
				if !ok {
					return e, transform.SameTree, nil
				}
				matches := matchingAttributes(candidates, ua.Name(), ua.Qualifier(), sensitivity)
				switch len(matches) {
				case 0:
					if ua.Deferred() {
						return e, transform.SameTree, nil
					}
					return ua.Defer(), transform.NewTree, nil
				case 1:
					return expression.NewAttributeRef(matches[0]), transform.NewTree, nil
				default:
					return nil, transform.SameTree, sql.ErrAmbiguousColumn.New(ua.Name(), sql.ResolutionCandidates(attributeNames(matches)))
				}
			})
			if err != nil {
				return nil, transform.SameTree, err
			}
			newExprs[i] = ne
			if same == transform.NewTree {
				changed = true
			}
		}

		if !changed {
			return node, transform.SameTree, nil
		}
		out, err := exprsNode.WithExpressions(newExprs...)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return out, transform.NewTree, nil
	})
}

func matchingAttributes(candidates sql.Schema, name, qualifier string, sensitivity sql.CaseSensitivity) []sql.Attribute {
	var matches []sql.Attribute
	for _, c := range candidates {
		if !sql.NamesEqual(c.Name, name, sensitivity) {
			continue
		}
		if qualifier != "" && !sql.NamesEqual(c.Qualifier, qualifier, sensitivity) {
			continue
		}
		matches = append(matches, c)
	}
	return matches
}

func attributeNames(attrs []sql.Attribute) []string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name
	}
	return names
}
