package analyzer

import (
	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/plan"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
)

// resolveNaturalJoins implements SPEC_FULL.md §6's ResolveNaturalJoins:
// once both sides of a NaturalJoin are resolved, it desugars `NATURAL
// JOIN`/`JOIN ... USING (cols)` into an equi-Join over the shared columns
// plus a Project that keeps only one copy of each shared column, matching
// the original source's pre-ResolveReferences natural-join handling.
// Ordered before ResolveRelations, so a NaturalJoin whose children are
// still unresolved relations is left alone on the pass where ResolveRelations
// binds them and is desugared on the following pass.
func resolveNaturalJoins(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(n sql.Node) (sql.Node, transform.TreeIdentity, error) {
		nj, ok := n.(*plan.NaturalJoin)
		if !ok {
			return n, transform.SameTree, nil
		}
		if !nj.Left.Resolved() || !nj.Right.Resolved() {
			return n, transform.SameTree, nil
		}

		sensitivity := a.Config.CaseSensitivity()
		leftOut := nj.Left.Output()
		rightOut := nj.Right.Output()

		var shared []string
		if nj.Natural {
			for _, l := range leftOut {
				for _, r := range rightOut {
					if sql.NamesEqual(l.Name, r.Name, sensitivity) {
						shared = append(shared, l.Name)
						break
					}
				}
			}
		} else {
			shared = nj.Using
		}

		if len(shared) == 0 {
			return nil, transform.SameTree, sql.ErrAnalysis.New("join has no common columns to match on")
		}

		var condition sql.Expression
		for _, name := range shared {
			leftAttr, ok := findByName(leftOut, name, sensitivity)
			if !ok {
				return nil, transform.SameTree, sql.ErrColumnNotFound.New(name)
			}
			rightAttr, ok := findByName(rightOut, name, sensitivity)
			if !ok {
				return nil, transform.SameTree, sql.ErrColumnNotFound.New(name)
			}
			eq := expression.NewEquals(expression.NewAttributeRef(leftAttr), expression.NewAttributeRef(rightAttr))
			if condition == nil {
				condition = eq
			} else {
				condition = expression.NewAnd(condition, eq)
			}
		}

		projectList := make([]sql.Expression, 0, len(leftOut)+len(rightOut))
		for _, attr := range leftOut {
			projectList = append(projectList, expression.NewAttributeRef(attr))
		}
		for _, attr := range rightOut {
			if isShared(attr.Name, shared, sensitivity) {
				continue
			}
			projectList = append(projectList, expression.NewAttributeRef(attr))
		}

		join := plan.NewJoin(nj.Type, nj.Left, nj.Right, condition)
		return plan.NewProject(projectList, join), transform.NewTree, nil
	})
}

func findByName(attrs []sql.Attribute, name string, sensitivity sql.CaseSensitivity) (sql.Attribute, bool) {
	for _, a := range attrs {
		if sql.NamesEqual(a.Name, name, sensitivity) {
			return a, true
		}
	}
	return sql.Attribute{}, false
}

func isShared(name string, shared []string, sensitivity sql.CaseSensitivity) bool {
	for _, s := range shared {
		if sql.NamesEqual(name, s, sensitivity) {
			return true
		}
	}
	return false
}
