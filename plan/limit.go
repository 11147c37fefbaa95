package plan

import (
	"fmt"

	"github.com/arcdb/sqlplan/sql"
)

// Limit caps child's output at Count rows.
type Limit struct {
	UnaryNode
	Count int64
}

var _ sql.Node = (*Limit)(nil)

func NewLimit(count int64, child sql.Node) *Limit {
	return &Limit{UnaryNode{child}, count}
}

func (l *Limit) Output() []sql.Attribute { return l.Child.Output() }

func (l *Limit) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(l, len(children), 1)
	}
	return NewLimit(l.Count, children[0]), nil
}

func (l *Limit) String() string { return fmt.Sprintf("Limit(%d)", l.Count) }
