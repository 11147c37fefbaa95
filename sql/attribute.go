package sql

import "github.com/arcdb/sqlplan/types"

// Attribute is a named, typed, identified reference to a column in a plan
// node's output. It is the data a resolved plan exposes about its schema;
// expression-level attribute references (expression.AttributeRef) carry one
// of these and nothing else.
type Attribute struct {
	Id        ExpressionId
	Name      string
	Qualifier string
	Type      types.DataType
	Nullable  bool
}

// WithId returns a copy of the attribute with a new id. Used by
// DeduplicateReferences when regenerating ids for one side of a self-join.
func (a Attribute) WithId(id ExpressionId) Attribute {
	a.Id = id
	return a
}

// WithQualifier returns a copy of the attribute with a new qualifier.
func (a Attribute) WithQualifier(qualifier string) Attribute {
	a.Qualifier = qualifier
	return a
}

// Schema is an ordered list of attributes describing a plan node's output.
type Schema []Attribute

// Ids returns the ids of every attribute in the schema, in order.
func (s Schema) Ids() []ExpressionId {
	ids := make([]ExpressionId, len(s))
	for i, a := range s {
		ids[i] = a.Id
	}
	return ids
}
