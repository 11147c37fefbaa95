package sql

// Row is a single tuple of column values, ordered to match a Node's Output
// schema. Execution is outside this core's scope (spec.md §1); Row exists
// only so the aggregation and expression interfaces have a concrete
// argument type to declare against.
type Row []interface{}

// Nameable is implemented by anything with a display name but no stable
// identity requirement, such as an unaliased aggregate function before
// ResolveAggregates wraps it in an AggregationAlias.
type Nameable interface {
	Name() string
}
