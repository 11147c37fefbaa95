package expression

import (
	"fmt"

	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/types"
)

// AttributeRef is a resolved reference to a column in a plan's output. It
// is the expression-level counterpart of sql.Attribute: every AttributeRef
// wraps exactly one Attribute and is otherwise a placeholder with no
// evaluation logic of its own (evaluation is out of this core's scope;
// RowIter-style execution is a named external collaborator).
//
// Grounded on the teacher's expression.GetField (sql/expression/get_field.go).
type AttributeRef struct {
	attr sql.Attribute
}

var _ sql.Expression = (*AttributeRef)(nil)
var _ sql.NamedExpression = (*AttributeRef)(nil)
var _ sql.Qualifiable = (*AttributeRef)(nil)

// NewAttributeRef builds an AttributeRef over the given attribute.
func NewAttributeRef(attr sql.Attribute) *AttributeRef {
	return &AttributeRef{attr: attr}
}

// Attribute returns the wrapped sql.Attribute.
func (a *AttributeRef) Attribute() sql.Attribute { return a.attr }

func (a *AttributeRef) Id() sql.ExpressionId { return a.attr.Id }

func (a *AttributeRef) Name() string { return a.attr.Name }

func (a *AttributeRef) Qualifier() string { return a.attr.Qualifier }

func (a *AttributeRef) Resolved() bool { return true }

func (a *AttributeRef) Type() types.DataType { return a.attr.Type }

func (a *AttributeRef) IsNullable() bool { return a.attr.Nullable }

// Foldable is always false: an attribute reference is exactly what
// spec.md's Foldable definition excludes.
func (a *AttributeRef) Foldable() bool { return false }

func (a *AttributeRef) Children() []sql.Expression { return nil }

func (a *AttributeRef) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenCount.New(a, len(children), 0)
	}
	return a, nil
}

// WithId returns a copy of this reference carrying a new id, used by
// DeduplicateReferences when regenerating one side of a self-join.
func (a *AttributeRef) WithId(id sql.ExpressionId) *AttributeRef {
	return NewAttributeRef(a.attr.WithId(id))
}

// WithQualifier returns a copy of this reference carrying a new qualifier.
func (a *AttributeRef) WithQualifier(qualifier string) *AttributeRef {
	return NewAttributeRef(a.attr.WithQualifier(qualifier))
}

func (a *AttributeRef) String() string {
	if a.attr.Qualifier == "" {
		return a.attr.Name
	}
	return fmt.Sprintf("%s.%s", a.attr.Qualifier, a.attr.Name)
}

// UnresolvedAttribute is a placeholder for a column reference the parser
// produced but the analyzer has not yet bound to a relation's output. Type,
// IsNullable and Foldable must not be called on it.
type UnresolvedAttribute struct {
	name      string
	qualifier string
	// deferred marks an attribute ResolveReferences already looked at and
	// found zero candidates for, as opposed to one it simply hasn't reached
	// yet. Supplements spec.md §4.4 with the teacher's deferredColumn
	// distinction (SPEC_FULL.md §5); ResolveReferences uses it to report
	// SameTree when it revisits the attribute. The post-analysis check does
	// not read it and reports any unresolved attribute as a missing column.
	deferred bool
}

var _ sql.Expression = (*UnresolvedAttribute)(nil)
var _ sql.Qualifiable = (*UnresolvedAttribute)(nil)

// NewUnresolvedAttribute creates an unqualified unresolved attribute.
func NewUnresolvedAttribute(name string) *UnresolvedAttribute {
	return &UnresolvedAttribute{name: name}
}

// NewUnresolvedQualifiedAttribute creates a qualified unresolved attribute.
func NewUnresolvedQualifiedAttribute(qualifier, name string) *UnresolvedAttribute {
	return &UnresolvedAttribute{name: name, qualifier: qualifier}
}

func (u *UnresolvedAttribute) Name() string { return u.name }

func (u *UnresolvedAttribute) Qualifier() string { return u.qualifier }

func (u *UnresolvedAttribute) Deferred() bool { return u.deferred }

// Defer returns a copy of this attribute marked as deferred.
func (u *UnresolvedAttribute) Defer() *UnresolvedAttribute {
	n := *u
	n.deferred = true
	return &n
}

func (u *UnresolvedAttribute) Resolved() bool { return false }

func (u *UnresolvedAttribute) Type() types.DataType {
	panic("UnresolvedAttribute is a placeholder node, but Type was called")
}

func (u *UnresolvedAttribute) IsNullable() bool {
	panic("UnresolvedAttribute is a placeholder node, but IsNullable was called")
}

func (u *UnresolvedAttribute) Foldable() bool { return false }

func (u *UnresolvedAttribute) Children() []sql.Expression { return nil }

func (u *UnresolvedAttribute) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenCount.New(u, len(children), 0)
	}
	return u, nil
}

func (u *UnresolvedAttribute) String() string {
	if u.qualifier == "" {
		return u.name
	}
	return fmt.Sprintf("%s.%s", u.qualifier, u.name)
}
