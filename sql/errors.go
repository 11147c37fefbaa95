package sql

import (
	"fmt"

	errors "gopkg.in/src-d/go-errors.v1"
)

// The analyzer's error taxonomy. Every error a rule or the type-constraint
// system can return is constructed from one of these kinds, so callers can
// match on a specific failure with errors.Is / Kind.Is rather than parsing
// message strings.
var (
	// ErrTableNotFound is returned when the catalog has no relation with the
	// given name.
	ErrTableNotFound = errors.NewKind("table not found: %s")

	// ErrFunctionNotFound is returned when the function registry has no
	// function with the given name.
	ErrFunctionNotFound = errors.NewKind("function not found: %s")

	// ErrAmbiguousColumn is returned by ResolveReferences when more than one
	// candidate attribute matches an unresolved attribute.
	ErrAmbiguousColumn = errors.NewKind("ambiguous column reference %q, candidates: %s")

	// ErrColumnNotFound is returned by the post-analysis check when an
	// unresolved attribute has no candidate anywhere in scope.
	ErrColumnNotFound = errors.NewKind("column not found: %s")

	// ErrUnresolvedPlan is returned by the post-analysis check when a plan
	// node remains unresolved after the resolution batch reaches fixed point.
	ErrUnresolvedPlan = errors.NewKind("unable to resolve plan: %s")

	// ErrTypeMismatch is returned when a type constraint rejects an
	// expression's children. Carries the offending expression and its actual
	// and expected types/abstract type.
	ErrTypeMismatch = errors.NewKind("type mismatch in %s: found %s, expected %s")

	// ErrIllegalAggregation is returned when an aggregate function is nested
	// inside another, or when a SELECT/HAVING/ORDER BY expression references
	// an attribute that is neither grouped nor aggregated.
	ErrIllegalAggregation = errors.NewKind("illegal aggregation in %s: %s")

	// ErrAnalysis is the catch-all for SQL-level misuse that doesn't fit a
	// more specific kind: DISTINCT *, foo(*) for foo != count, etc.
	ErrAnalysis = errors.NewKind("analysis error: %s")

	// ErrUnsupportedOperation is returned when a construct the analyzer
	// recognizes but deliberately does not support survives rewriting, e.g.
	// a DISTINCT aggregate function after RewriteDistinctAggregateFunctions.
	ErrUnsupportedOperation = errors.NewKind("unsupported operation: %s")

	// ErrInvalidChildrenCount is returned by WithChildren implementations
	// when called with the wrong number of children. Indicates a bug in a
	// rule, not a user-facing analysis failure.
	ErrInvalidChildrenCount = errors.NewKind("%T: invalid children count, got %d, expected %d")

	// ErrMaxAnalysisIterations describes a FixedPoint rule batch exhausting
	// its iteration limit without reaching a fixed point. The analyzer does
	// not return it: a non-converging batch logs a warning and analysis
	// continues with the best-effort tree.
	ErrMaxAnalysisIterations = errors.NewKind("exceeded max analysis iterations (%d) in batch %q")
)

// ResolutionCandidates renders a list of attributes for an ErrAmbiguousColumn
// message.
func ResolutionCandidates(names []string) string {
	return fmt.Sprintf("%v", names)
}
