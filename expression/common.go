// Package expression implements the concrete Expression node kinds from
// spec.md §3: literals, attribute references (resolved and unresolved),
// aliases, star, unresolved functions, aggregate functions, and the
// generated named expressions the aggregate-resolution rule introduces.
//
// Grounded on the teacher's sql/expression package, most directly
// common.go (UnaryExpression/BinaryExpression embeddables), get_field.go
// (the resolved attribute reference), unresolved.go (UnresolvedColumn/
// UnresolvedFunction) and alias.go.
package expression

import "github.com/arcdb/sqlplan/sql"

// IsUnary reports whether e has exactly one child.
func IsUnary(e sql.Expression) bool { return len(e.Children()) == 1 }

// IsBinary reports whether e has exactly two children.
func IsBinary(e sql.Expression) bool { return len(e.Children()) == 2 }

// UnaryExpression is embedded by every expression kind with exactly one
// operand; it supplies the Children/Resolved/IsNullable/Foldable boilerplate
// so concrete kinds only implement what's distinctive about them.
type UnaryExpression struct {
	Child sql.Expression
}

func (e UnaryExpression) UnaryChild() sql.Expression { return e.Child }

func (e UnaryExpression) Children() []sql.Expression { return []sql.Expression{e.Child} }

func (e UnaryExpression) Resolved() bool { return e.Child.Resolved() }

func (e UnaryExpression) IsNullable() bool { return e.Child.IsNullable() }

func (e UnaryExpression) Foldable() bool { return e.Child.Foldable() }

// BinaryExpression is embedded by every expression kind with exactly two
// operands.
type BinaryExpression struct {
	Left  sql.Expression
	Right sql.Expression
}

func (e BinaryExpression) Children() []sql.Expression {
	return []sql.Expression{e.Left, e.Right}
}

func (e BinaryExpression) Resolved() bool {
	return e.Left.Resolved() && e.Right.Resolved()
}

func (e BinaryExpression) IsNullable() bool {
	return e.Left.IsNullable() || e.Right.IsNullable()
}

func (e BinaryExpression) Foldable() bool {
	return e.Left.Foldable() && e.Right.Foldable()
}

// NaryExpression is embedded by expression kinds with a variable-length
// child list: UnresolvedFunction's arguments, Tuple, etc.
type NaryExpression struct {
	ChildExprs []sql.Expression
}

func (e NaryExpression) Children() []sql.Expression { return e.ChildExprs }

func (e NaryExpression) Resolved() bool {
	for _, c := range e.ChildExprs {
		if !c.Resolved() {
			return false
		}
	}
	return true
}

func (e NaryExpression) IsNullable() bool {
	for _, c := range e.ChildExprs {
		if c.IsNullable() {
			return true
		}
	}
	return false
}

func (e NaryExpression) Foldable() bool {
	for _, c := range e.ChildExprs {
		if !c.Foldable() {
			return false
		}
	}
	return true
}
