package constraint

import (
	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/types"
)

func evalPassThrough(e sql.Expression, children []sql.Expression) ([]sql.Expression, error) {
	for _, c := range children {
		if !isStrictlyTyped(c) {
			return nil, sql.ErrTypeMismatch.New(e, c.Type(), "any")
		}
	}
	return children, nil
}

func evalSameTypeAs(e sql.Expression, target types.DataType, children []sql.Expression) ([]sql.Expression, error) {
	out := make([]sql.Expression, len(children))
	for i, c := range children {
		if !isStrictlyTyped(c) {
			return nil, sql.ErrTypeMismatch.New(e, "unresolved", target)
		}
		if !c.Type().CompatibleWith(target) {
			return nil, sql.ErrTypeMismatch.New(e, c.Type(), target)
		}
		out[i] = coerceTo(c, target)
	}
	return out, nil
}

func evalSameSubtypesOf(e sql.Expression, abstract types.AbstractType, children []sql.Expression) ([]sql.Expression, error) {
	var anchors []types.DataType
	for _, c := range children {
		if !isStrictlyTyped(c) {
			return nil, sql.ErrTypeMismatch.New(e, "unresolved", abstract)
		}
		if c.Type().IsA(abstract) {
			anchors = append(anchors, c.Type())
		}
	}
	if len(anchors) == 0 {
		return nil, sql.ErrTypeMismatch.New(e, "no child", abstract)
	}
	widest, ok := types.WidestCommonSupertype(anchors)
	if !ok {
		return nil, sql.ErrTypeMismatch.New(e, "incompatible subtypes of", abstract)
	}
	out := make([]sql.Expression, len(children))
	for i, c := range children {
		if !c.Type().CompatibleWith(widest) {
			return nil, sql.ErrTypeMismatch.New(e, c.Type(), widest)
		}
		out[i] = coerceTo(c, widest)
	}
	return out, nil
}

func evalSameType(e sql.Expression, children []sql.Expression) ([]sql.Expression, error) {
	ts := make([]types.DataType, len(children))
	for i, c := range children {
		if !isStrictlyTyped(c) {
			return nil, sql.ErrTypeMismatch.New(e, "unresolved", "a common type")
		}
		ts[i] = c.Type()
	}
	widest, ok := types.WidestCommonSupertype(ts)
	if !ok {
		return nil, sql.ErrTypeMismatch.New(e, "incompatible types", "a common type")
	}
	out := make([]sql.Expression, len(children))
	for i, c := range children {
		out[i] = coerceTo(c, widest)
	}
	return out, nil
}

func evalFoldable(e sql.Expression, children []sql.Expression) ([]sql.Expression, error) {
	for _, c := range children {
		if !c.Foldable() {
			return nil, sql.ErrTypeMismatch.New(e, "non-foldable", "foldable")
		}
	}
	return children, nil
}

// isStrictlyTyped reports whether c is resolved enough that its type can be
// inspected: resolved, and not a placeholder whose Type panics.
func isStrictlyTyped(c sql.Expression) bool {
	return c.Resolved()
}

// coerceTo wraps c in a Cast if its type differs from target, preserving
// the original expression untouched per spec.md §4.3's "coercion inserts
// an explicit cast wrapper expression" rather than mutating in place.
func coerceTo(c sql.Expression, target types.DataType) sql.Expression {
	if c.Type().Equal(target) {
		return c
	}
	return expression.NewCast(c, target)
}
