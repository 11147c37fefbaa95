package transform

import "github.com/arcdb/sqlplan/sql"

// ExprFunc is a partial rewrite function over expression trees.
type ExprFunc func(e sql.Expression) (sql.Expression, TreeIdentity, error)

// Expr applies f to every node in the expression tree rooted at e,
// bottom-up. Grounded on the teacher's sql/transform/expr.go Expr.
func Expr(e sql.Expression, f ExprFunc) (sql.Expression, TreeIdentity, error) {
	children := e.Children()
	if len(children) == 0 {
		return f(e)
	}

	newChildren := make([]sql.Expression, len(children))
	sameC := SameTree
	for i, c := range children {
		nc, same, err := Expr(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = nc
		sameC = and(sameC, same)
	}

	cur := e
	if sameC == NewTree {
		var err error
		cur, err = e.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
	}

	out, sameN, err := f(cur)
	if err != nil {
		return nil, SameTree, err
	}
	return out, and(sameC, sameN), nil
}

// ExprDown applies f to every node in the expression tree rooted at e,
// top-down.
func ExprDown(e sql.Expression, f ExprFunc) (sql.Expression, TreeIdentity, error) {
	cur, sameN, err := f(e)
	if err != nil {
		return nil, SameTree, err
	}

	children := cur.Children()
	if len(children) == 0 {
		return cur, sameN, nil
	}

	newChildren := make([]sql.Expression, len(children))
	sameC := SameTree
	for i, c := range children {
		nc, same, err := ExprDown(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = nc
		sameC = and(sameC, same)
	}

	if sameC == SameTree {
		return cur, sameN, nil
	}
	out, err := cur.WithChildren(newChildren...)
	if err != nil {
		return nil, SameTree, err
	}
	return out, NewTree, nil
}

// InspectExpr performs a pre-order traversal of e, calling f at each node.
// If f returns false for a node, its subtree is skipped.
func InspectExpr(e sql.Expression, f func(sql.Expression) bool) {
	if !f(e) {
		return
	}
	for _, c := range e.Children() {
		InspectExpr(c, f)
	}
}

// CollectExpr gathers the result of f across every expression in the tree,
// in pre-order.
func CollectExpr[T any](e sql.Expression, f func(sql.Expression) (T, bool)) []T {
	var out []T
	if v, ok := f(e); ok {
		out = append(out, v)
	}
	for _, c := range e.Children() {
		out = append(out, CollectExpr(c, f)...)
	}
	return out
}

// NodeExprsUp lifts an expression rewrite to run, bottom-up, at every
// expression position inside every plan node of the tree rooted at n:
// spec.md §4.1's transform-expressions-up.
func NodeExprsUp(n sql.Node, f ExprFunc) (sql.Node, TreeIdentity, error) {
	return Node(n, func(n sql.Node) (sql.Node, TreeIdentity, error) {
		exprsNode, ok := n.(sql.Expressioner)
		if !ok {
			return n, SameTree, nil
		}

		exprs := exprsNode.Expressions()
		if len(exprs) == 0 {
			return n, SameTree, nil
		}

		newExprs := make([]sql.Expression, len(exprs))
		same := SameTree
		for i, e := range exprs {
			ne, s, err := Expr(e, f)
			if err != nil {
				return nil, SameTree, err
			}
			newExprs[i] = ne
			same = and(same, s)
		}

		if same == SameTree {
			return n, SameTree, nil
		}
		out, err := exprsNode.WithExpressions(newExprs...)
		if err != nil {
			return nil, SameTree, err
		}
		return out, NewTree, nil
	})
}

// NodeExprsDown lifts an expression rewrite to run, top-down, at every
// expression position inside every plan node of the tree rooted at n.
func NodeExprsDown(n sql.Node, f ExprFunc) (sql.Node, TreeIdentity, error) {
	return NodeDown(n, func(n sql.Node) (sql.Node, TreeIdentity, error) {
		exprsNode, ok := n.(sql.Expressioner)
		if !ok {
			return n, SameTree, nil
		}

		exprs := exprsNode.Expressions()
		if len(exprs) == 0 {
			return n, SameTree, nil
		}

		newExprs := make([]sql.Expression, len(exprs))
		same := SameTree
		for i, e := range exprs {
			ne, s, err := ExprDown(e, f)
			if err != nil {
				return nil, SameTree, err
			}
			newExprs[i] = ne
			same = and(same, s)
		}

		if same == SameTree {
			return n, SameTree, nil
		}
		out, err := exprsNode.WithExpressions(newExprs...)
		if err != nil {
			return nil, SameTree, err
		}
		return out, NewTree, nil
	})
}

// InspectExpressions walks the plan and calls f on every expression found
// at any node, short-circuiting a subtree when f returns false.
func InspectExpressions(n sql.Node, f func(sql.Expression) bool) {
	Inspect(n, func(n sql.Node) bool {
		if en, ok := n.(sql.Expressioner); ok {
			for _, e := range en.Expressions() {
				InspectExpr(e, f)
			}
		}
		return true
	})
}
