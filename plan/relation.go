package plan

import (
	"fmt"

	"github.com/arcdb/sqlplan/sql"
)

// UnresolvedRelation is a placeholder for a table reference the parser
// produced but ResolveRelations has not yet bound to a catalog entry.
type UnresolvedRelation struct {
	name  string
	alias string
}

var _ sql.Node = (*UnresolvedRelation)(nil)

// NewUnresolvedRelation creates a placeholder relation reference. alias may
// be empty, in which case name is also the relation's output qualifier.
func NewUnresolvedRelation(name, alias string) *UnresolvedRelation {
	return &UnresolvedRelation{name: name, alias: alias}
}

func (r *UnresolvedRelation) Name() string { return r.name }

// Alias returns the AS-clause alias, or the relation name if none was given.
func (r *UnresolvedRelation) Alias() string {
	if r.alias != "" {
		return r.alias
	}
	return r.name
}

func (r *UnresolvedRelation) Resolved() bool { return false }

func (r *UnresolvedRelation) Output() []sql.Attribute {
	panic("UnresolvedRelation is a placeholder node, but Output was called")
}

func (r *UnresolvedRelation) Children() []sql.Node { return nil }

func (r *UnresolvedRelation) WithChildren(children ...sql.Node) (sql.Node, error) {
	return NillaryWithChildren(r, children...)
}

func (r *UnresolvedRelation) String() string {
	if r.alias != "" {
		return fmt.Sprintf("UnresolvedRelation(%s AS %s)", r.name, r.alias)
	}
	return fmt.Sprintf("UnresolvedRelation(%s)", r.name)
}

// Relation is a resolved base table, as returned by the catalog's
// lookupRelation. It carries its own output schema and a qualifier so
// self-joins can produce two distinct instances of the same table
// (spec.md §4.4's DeduplicateReferences "multi-instance relation" case).
type Relation struct {
	name      string
	qualifier string
	schema    sql.Schema
}

var _ sql.Node = (*Relation)(nil)

// NewRelation builds a resolved relation named name with the given output
// schema, qualified by qualifier (typically name itself, or the AS-alias).
func NewRelation(name, qualifier string, schema sql.Schema) *Relation {
	return &Relation{name: name, qualifier: qualifier, schema: schema}
}

func (r *Relation) Name() string { return r.name }

func (r *Relation) Qualifier() string { return r.qualifier }

func (r *Relation) Resolved() bool { return true }

func (r *Relation) Output() []sql.Attribute { return r.schema }

func (r *Relation) Children() []sql.Node { return nil }

func (r *Relation) WithChildren(children ...sql.Node) (sql.Node, error) {
	return NillaryWithChildren(r, children...)
}

// WithFreshIds returns a copy of r whose output schema is the supplied one,
// used by DeduplicateReferences to install a self-joined table's schema
// after it has given fresh ids to the colliding attributes.
func (r *Relation) WithFreshIds(schema sql.Schema) *Relation {
	return &Relation{name: r.name, qualifier: r.qualifier, schema: schema}
}

func (r *Relation) String() string {
	if r.qualifier != "" && r.qualifier != r.name {
		return fmt.Sprintf("Relation(%s AS %s)", r.name, r.qualifier)
	}
	return fmt.Sprintf("Relation(%s)", r.name)
}
