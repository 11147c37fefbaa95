package analyzer

import (
	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/internal/idgen"
	"github.com/arcdb/sqlplan/plan"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
)

// deduplicateReferences implements spec.md §4.4's DeduplicateReferences:
// top-down over binary plan operators whose children are resolved but
// whose output ids collide, mint a fresh id for every colliding attribute
// on the right side and propagate the substitution through the entire
// right subtree.
func deduplicateReferences(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.NodeDown(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		if !isBinaryOperator(node) {
			return node, transform.SameTree, nil
		}
		children := node.Children()
		left, right := children[0], children[1]
		if !left.Resolved() || !right.Resolved() {
			return node, transform.SameTree, nil
		}

		colliding := collidingIds(left.Output(), right.Output())
		if len(colliding) == 0 {
			return node, transform.SameTree, nil
		}

		idMap := make(map[sql.ExpressionId]sql.ExpressionId, len(colliding))
		for id := range colliding {
			idMap[id] = sql.ExpressionId(idgen.Next())
		}

		newRight, err := remapRelationIds(right, idMap)
		if err != nil {
			return nil, transform.SameTree, err
		}
		newRight, err = remapExpressionIds(newRight, idMap)
		if err != nil {
			return nil, transform.SameTree, err
		}

		out, err := node.WithChildren(left, newRight)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return out, transform.NewTree, nil
	})
}

func isBinaryOperator(n sql.Node) bool {
	switch n.(type) {
	case *plan.Join, *plan.SetOp:
		return true
	default:
		return false
	}
}

func collidingIds(left, right sql.Schema) map[sql.ExpressionId]bool {
	leftIds := make(map[sql.ExpressionId]bool, len(left))
	for _, a := range left {
		leftIds[a.Id] = true
	}
	colliding := map[sql.ExpressionId]bool{}
	for _, a := range right {
		if leftIds[a.Id] {
			colliding[a.Id] = true
		}
	}
	return colliding
}

// remapRelationIds mints fresh ids for every *plan.Relation output
// attribute whose id appears in idMap, implementing the "multi-instance
// relation" case of DeduplicateReferences.
func remapRelationIds(n sql.Node, idMap map[sql.ExpressionId]sql.ExpressionId) (sql.Node, error) {
	result, _, err := transform.Node(n, func(n sql.Node) (sql.Node, transform.TreeIdentity, error) {
		rel, ok := n.(*plan.Relation)
		if !ok {
			return n, transform.SameTree, nil
		}
		changed := false
		schema := make(sql.Schema, len(rel.Output()))
		for i, attr := range rel.Output() {
			if newId, ok := idMap[attr.Id]; ok {
				schema[i] = attr.WithId(newId)
				changed = true
			} else {
				schema[i] = attr
			}
		}
		if !changed {
			return n, transform.SameTree, nil
		}
		return rel.WithFreshIds(schema), transform.NewTree, nil
	})
	return result, err
}

// remapExpressionIds rewrites every NamedExpression and AttributeRef whose
// id is a key of idMap to carry its mapped id instead, propagating the
// DeduplicateReferences substitution through the rest of the right
// subtree (e.g. a projection's own aliases, or downstream references to
// them).
func remapExpressionIds(n sql.Node, idMap map[sql.ExpressionId]sql.ExpressionId) (sql.Node, error) {
	result, _, err := transform.NodeExprsUp(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		switch ex := e.(type) {
		case *expression.AttributeRef:
			if newId, ok := idMap[ex.Id()]; ok {
				return ex.WithId(newId), transform.NewTree, nil
			}
		case *expression.Alias:
			if newId, ok := idMap[ex.Id()]; ok {
				return ex.WithId(newId), transform.NewTree, nil
			}
		}
		return e, transform.SameTree, nil
	})
	return result, err
}
