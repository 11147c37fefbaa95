// Package catalog declares the external collaborator interface the
// analyzer consults to bind relation and function names (spec.md §4.5):
// lookupRelation and the function registry's lookupFunction. The catalog
// storage layer itself is out of this core's scope; this package also
// provides an in-memory test double grounded on the teacher's memory
// package (memory/database.go) so rule tests don't need a real backing
// store.
package catalog

import (
	"github.com/arcdb/sqlplan/sql"
)

// Catalog resolves relation and function names for the analyzer. Every
// name lookup is governed by the caller-supplied case-sensitivity policy.
type Catalog interface {
	// LookupRelation returns the logical plan backing name, typically a
	// *plan.Relation. Fails with sql.ErrTableNotFound if absent.
	LookupRelation(name string, sensitivity sql.CaseSensitivity) (sql.Node, error)
	// LookupFunction returns the registry entry for name. Fails with
	// sql.ErrFunctionNotFound if absent.
	LookupFunction(name string, sensitivity sql.CaseSensitivity) (FunctionInfo, error)
}

// FunctionInfo builds a bound expression from resolved arguments.
type FunctionInfo interface {
	Name() string
	// IsAggregate reports whether Build produces an expression.Aggregation.
	// ResolveFunctions does not call it; it checks the built expression's
	// type to decide whether a `distinct` modifier is legal (spec.md §4.4).
	IsAggregate() bool
	Build(args []sql.Expression) (sql.Expression, error)
}

