package analyzer

import (
	"github.com/arcdb/sqlplan/constraint"
	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
	"github.com/arcdb/sqlplan/types"
)

// typeCheck implements spec.md §4.4's TypeCheck: bottom-up over every
// resolved plan node, each expression evaluates its type constraint and has
// its children replaced by the coerced list; a constraint failure aborts
// the whole analysis.
func typeCheck(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		exprsNode, ok := node.(sql.Expressioner)
		if !ok || !node.Resolved() {
			return node, transform.SameTree, nil
		}

		exprs := exprsNode.Expressions()
		newExprs := make([]sql.Expression, len(exprs))
		changed := false
		for i, e := range exprs {
			ne, same, err := transform.Expr(e, checkExprConstraint)
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

// checkExprConstraint evaluates e's declared type constraint against its
// (already bottom-up-checked) children, rebuilding e with the coerced
// child list when coercion changed anything.
func checkExprConstraint(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
	children := e.Children()
	if len(children) == 0 {
		return e, transform.SameTree, nil
	}

	coerced, err := constraint.Eval(constraintFor(e), e, children)
	if err != nil {
		return nil, transform.SameTree, err
	}

	changed := false
	for i := range children {
		if coerced[i] != children[i] {
			changed = true
			break
		}
	}
	if !changed {
		return e, transform.SameTree, nil
	}
	out, err := e.WithChildren(coerced...)
	if err != nil {
		return nil, transform.SameTree, err
	}
	return out, transform.NewTree, nil
}

// constraintFor maps a concrete expression kind to its type constraint
// (spec.md §4.3). Kinds not listed require nothing beyond their children
// being strictly typed.
func constraintFor(e sql.Expression) constraint.Constraint {
	switch e.(type) {
	case expression.ArithmeticOp:
		return constraint.SameSubtypesOf(types.NumericType)
	case expression.Comparison:
		return constraint.SameType()
	case *expression.And, *expression.Or:
		return constraint.SameTypeAs(types.Boolean)
	default:
		return constraint.PassThrough()
	}
}
