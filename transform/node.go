// Package transform provides the generic tree-rewriting primitives the
// analyzer's rule engine is built on (spec.md §4.1): top-down and
// bottom-up rewrites over both plan and expression trees, a lift from
// expression rewrites to every expression position in a plan, and
// pre-order collection helpers. Every rewrite here preserves node/
// expression identity when nothing changed, which is what lets the rule
// engine detect fixed points by a cheap identity check before falling back
// to structural equality.
//
// Grounded on the teacher's sql/transform package (walk.go, expr.go); the
// Node/NodeFunc half of that package was not present in the retrieved
// source, so it is reconstructed here from the teacher's own test fixtures
// (sql/transform/node_test.go), which exercise exactly this API shape.
package transform

import "github.com/arcdb/sqlplan/sql"

// NodeFunc is a partial rewrite function over plan nodes. It returns the
// (possibly unchanged) node, whether the node itself changed, and an error.
type NodeFunc func(n sql.Node) (sql.Node, TreeIdentity, error)

// Node applies f to every node in the tree rooted at n, bottom-up: children
// are rewritten first, then f is applied to the node with its (possibly
// new) children. If neither the children nor the node itself changed, the
// original n is returned unchanged.
func Node(n sql.Node, f NodeFunc) (sql.Node, TreeIdentity, error) {
	children := n.Children()
	if len(children) == 0 {
		return f(n)
	}

	newChildren := make([]sql.Node, len(children))
	sameC := SameTree
	for i, c := range children {
		nc, same, err := Node(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = nc
		sameC = and(sameC, same)
	}

	cur := n
	if sameC == NewTree {
		var err error
		cur, err = n.WithChildren(newChildren...)
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

// NodeDown applies f to every node in the tree rooted at n, top-down: f is
// applied to the node first, then its (possibly new) children are
// rewritten. Used when a rewrite needs to see the unrewritten parent before
// deciding what to do with children, e.g. ExpandStars.
func NodeDown(n sql.Node, f NodeFunc) (sql.Node, TreeIdentity, error) {
	cur, sameN, err := f(n)
	if err != nil {
		return nil, SameTree, err
	}

	children := cur.Children()
	if len(children) == 0 {
		return cur, sameN, nil
	}

	newChildren := make([]sql.Node, len(children))
	sameC := SameTree
	for i, c := range children {
		nc, same, err := NodeDown(c, f)
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

// Collect gathers the result of f across every node in the tree, in
// pre-order. Nodes for which f returns ok=false contribute nothing.
func Collect[T any](n sql.Node, f func(sql.Node) (T, bool)) []T {
	var out []T
	if v, ok := f(n); ok {
		out = append(out, v)
	}
	for _, c := range n.Children() {
		out = append(out, Collect(c, f)...)
	}
	return out
}

// CollectFirst returns the first node in pre-order for which f returns
// ok=true.
func CollectFirst[T any](n sql.Node, f func(sql.Node) (T, bool)) (T, bool) {
	if v, ok := f(n); ok {
		return v, true
	}
	for _, c := range n.Children() {
		if v, ok := CollectFirst(c, f); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Inspect performs a pre-order traversal of n, calling f at each node. If f
// returns false, traversal of that node's subtree is skipped, but its
// siblings are still visited.
func Inspect(n sql.Node, f func(sql.Node) bool) {
	if !f(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, f)
	}
}
