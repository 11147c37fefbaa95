package plan

import "github.com/arcdb/sqlplan/sql"

// Distinct removes duplicate rows from child. RewriteDistinctsAsAggregates
// (spec.md §4.4) rewrites every occurrence into an UnresolvedAggregate
// before ResolveAggregates ever runs, so Distinct never survives to the
// final resolved plan.
type Distinct struct {
	UnaryNode
}

var _ sql.Node = (*Distinct)(nil)

func NewDistinct(child sql.Node) *Distinct {
	return &Distinct{UnaryNode{child}}
}

func (d *Distinct) Output() []sql.Attribute { return d.Child.Output() }

func (d *Distinct) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(d, len(children), 1)
	}
	return NewDistinct(children[0]), nil
}

func (d *Distinct) String() string { return "Distinct" }
