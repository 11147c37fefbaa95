// Package sql defines the core tree abstractions the analyzer operates on:
// the Expression and Node interfaces, the generic Children/WithChildren
// contract every tree node must satisfy, and the small set of attributes
// (Resolved, Foldable, nullability, data type) that every expression and
// plan node carries.
package sql

import "github.com/arcdb/sqlplan/types"

// ExpressionId uniquely identifies a named-expression instance within a
// single analyzer run. Ids are minted by the global allocator in
// internal/idgen and never reused.
type ExpressionId int64

// Expression is the immutable tree node shared by every scalar expression
// kind: literals, attribute references, function calls, aggregates,
// aliases and the unresolved placeholders the parser produces.
type Expression interface {
	// Resolved reports whether name and function binding are complete for
	// this node and every descendant.
	Resolved() bool
	// Type returns the expression's data type. Only valid to call once
	// Resolved is true and the expression has passed type checking.
	Type() types.DataType
	// IsNullable reports whether this expression may produce a null value.
	IsNullable() bool
	// Foldable reports whether the expression is deterministic and free of
	// attribute references, i.e. evaluable without a row.
	Foldable() bool
	// Children returns the expression's operands, in order.
	Children() []Expression
	// WithChildren returns a copy of this expression with its children
	// replaced by newChildren, preserving every other field. Implementations
	// must reject a children slice of the wrong length.
	WithChildren(newChildren ...Expression) (Expression, error)
	// String renders the expression the way it would appear in SQL.
	String() string
}

// NamedExpression is an Expression that additionally carries a display name
// and a stable identity across rewrites: aliases and attribute references.
type NamedExpression interface {
	Expression
	Name() string
	Id() ExpressionId
}

// Qualifiable is implemented by expressions that may carry a table/relation
// qualifier: unresolved attributes, resolved attribute references, and star.
type Qualifiable interface {
	Qualifier() string
}

// Node is the immutable tree node shared by every logical plan kind.
type Node interface {
	// Resolved reports whether every expression and child of this node is
	// resolved.
	Resolved() bool
	// Output returns the node's output attributes, in order. Only
	// meaningful once Resolved is true.
	Output() []Attribute
	// Children returns the node's plan children, in order.
	Children() []Node
	// WithChildren returns a copy of this node with its children replaced,
	// preserving every other field.
	WithChildren(newChildren ...Node) (Node, error)
	String() string
}

// Expressioner is implemented by plan nodes that carry expressions directly
// (as opposed to only through their children): Project, Filter, Sort, etc.
type Expressioner interface {
	Node
	Expressions() []Expression
	WithExpressions(exprs ...Expression) (Node, error)
}
