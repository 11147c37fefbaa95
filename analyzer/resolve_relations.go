package analyzer

import (
	"github.com/arcdb/sqlplan/plan"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
)

// inlineCTERelations implements spec.md §4.4's InlineCTERelations:
// bottom-up, each With(child, name, cte) is replaced by child with every
// UnresolvedRelation(name) substituted by cte wrapped as a SubqueryAlias.
// Bottom-up order means an inner With's substitution runs before an outer
// With with the same name is considered, so inner CTEs correctly shadow
// outer ones.
func inlineCTERelations(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(n sql.Node) (sql.Node, transform.TreeIdentity, error) {
		with, ok := n.(*plan.With)
		if !ok {
			return n, transform.SameTree, nil
		}

		aliased := plan.NewSubqueryAlias(with.Name, with.CTERelation)
		rewritten, _, err := transform.Node(with.Child, func(n sql.Node) (sql.Node, transform.TreeIdentity, error) {
			rel, ok := n.(*plan.UnresolvedRelation)
			if !ok || rel.Name() != with.Name {
				return n, transform.SameTree, nil
			}
			return aliased, transform.NewTree, nil
		})
		if err != nil {
			return nil, transform.SameTree, err
		}
		return rewritten, transform.NewTree, nil
	})
}

// resolveRelations implements spec.md §4.4's ResolveRelations: bottom-up,
// every UnresolvedRelation(name) is replaced with the catalog's
// lookupRelation(name), failing TableNotFound if absent.
func resolveRelations(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(n sql.Node) (sql.Node, transform.TreeIdentity, error) {
		rel, ok := n.(*plan.UnresolvedRelation)
		if !ok {
			return n, transform.SameTree, nil
		}
		resolved, err := a.Catalog.LookupRelation(rel.Name(), a.Config.CaseSensitivity())
		if err != nil {
			return nil, transform.SameTree, err
		}
		if rel.Alias() != rel.Name() {
			resolved = plan.NewSubqueryAlias(rel.Alias(), resolved)
		}
		return resolved, transform.NewTree, nil
	})
}
