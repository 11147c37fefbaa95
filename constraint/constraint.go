// Package constraint implements the type-constraint combinator ADT
// (spec.md §4.3): each expression kind declares a Constraint describing how
// its children's types relate to each other, and Eval either returns a
// coerced child list or a structured sql.ErrTypeMismatch.
//
// Represented as a small closed ADT with a single evaluator rather than
// polymorphic dispatch per combinator, per spec.md §9's explicit design
// note — this keeps the constraint language inspectable (a rule can walk a
// Constraint value without calling into it) and mirrors how this core
// already represents DataType and Expression as tagged variants rather than
// open interfaces.
package constraint

import (
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/types"
)

type kind int

const (
	kindPassThrough kind = iota
	kindSameTypeAs
	kindSameSubtypesOf
	kindSameType
	kindFoldable
	kindStrictlyTyped
	kindConcat
	kindAndThen
	kindOrElse
)

// Constraint is an immutable description of a typing rule over an
// expression's children. Build one with the package-level constructors and
// evaluate it with Eval.
type Constraint struct {
	kind     kind
	target   types.DataType
	abstract types.AbstractType

	// operands for Concat/OrElse, or the single operand for AndThen/
	// StrictlyTyped.
	a, b *Constraint

	// andThen is set only for kindAndThen: it receives the result of
	// evaluating a and produces the next constraint to apply.
	andThen func([]sql.Expression) Constraint
}

// PassThrough requires every child to already be strictly typed, with no
// cross-child requirement. It is the constraint for expressions whose
// children's types are independent, e.g. a function with fixed positional
// argument types that don't need to agree with each other.
func PassThrough() Constraint { return Constraint{kind: kindPassThrough} }

// SameTypeAs requires every child to be compatible with target and coerces
// each one to it. It is the constraint for e.g. a CASE branch that must
// match a caller-supplied result type.
func SameTypeAs(target types.DataType) Constraint {
	return Constraint{kind: kindSameTypeAs, target: target}
}

// SameSubtypesOf requires every child to be strictly typed, and among the
// children that are already a subtype of abstract, computes their widest
// common type; it fails if no child is directly a subtype of abstract, then
// coerces every child to that widest type. This is the constraint behind
// arithmetic operators: "1" + 2 succeeds (2 anchors the numeric family,
// "1" widens into it) but "1" + "2" fails (neither child anchors it).
func SameSubtypesOf(abstract types.AbstractType) Constraint {
	return Constraint{kind: kindSameSubtypesOf, abstract: abstract}
}

// SameType coerces all children to the widest common type across them, with
// no anchor requirement. This is the constraint behind comparisons.
func SameType() Constraint { return Constraint{kind: kindSameType} }

// Foldable requires every child to be foldable (spec.md §3: deterministic
// and free of attribute references), performing no coercion of its own.
func Foldable() Constraint { return Constraint{kind: kindFoldable} }

// StrictlyTyped requires the wrapped constraint to succeed, performing no
// further coercion; useful for composing a coercing constraint beneath a
// check that must not itself introduce casts.
func StrictlyTyped(c Constraint) Constraint {
	return Constraint{kind: kindStrictlyTyped, a: &c}
}

// Concat requires both a and b to succeed against the same children,
// concatenating their coerced results; Concat preserves child order, so it
// is only meaningful when a and b partition or duplicate the same slice
// rather than disagree on length.
func Concat(a, b Constraint) Constraint {
	return Constraint{kind: kindConcat, a: &a, b: &b}
}

// AndThen runs a, then calls f with a's coerced result to produce the next
// constraint, and evaluates that against the same original children.
func AndThen(a Constraint, f func(coerced []sql.Expression) Constraint) Constraint {
	return Constraint{kind: kindAndThen, a: &a, andThen: f}
}

// OrElse tries a; if a fails, tries b against the original children.
func OrElse(a, b Constraint) Constraint {
	return Constraint{kind: kindOrElse, a: &a, b: &b}
}

// Eval evaluates c against children, in the context of the expression e
// producing the structured error message on failure. It returns a new
// child list with coercions (Cast wrappers) inserted where a combinator
// calls for one; callers typically feed the result straight into
// e.WithChildren.
func Eval(c Constraint, e sql.Expression, children []sql.Expression) ([]sql.Expression, error) {
	switch c.kind {
	case kindPassThrough:
		return evalPassThrough(e, children)
	case kindSameTypeAs:
		return evalSameTypeAs(e, c.target, children)
	case kindSameSubtypesOf:
		return evalSameSubtypesOf(e, c.abstract, children)
	case kindSameType:
		return evalSameType(e, children)
	case kindFoldable:
		return evalFoldable(e, children)
	case kindStrictlyTyped:
		return Eval(*c.a, e, children)
	case kindConcat:
		left, err := Eval(*c.a, e, children)
		if err != nil {
			return nil, err
		}
		right, err := Eval(*c.b, e, children)
		if err != nil {
			return nil, err
		}
		return append(append([]sql.Expression{}, left...), right...), nil
	case kindAndThen:
		result, err := Eval(*c.a, e, children)
		if err != nil {
			return nil, err
		}
		return Eval(c.andThen(result), e, children)
	case kindOrElse:
		result, err := Eval(*c.a, e, children)
		if err == nil {
			return result, nil
		}
		return Eval(*c.b, e, children)
	default:
		panic("constraint: unhandled kind")
	}
}
