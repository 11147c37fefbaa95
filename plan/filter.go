package plan

import (
	"fmt"

	"github.com/arcdb/sqlplan/sql"
)

// Filter keeps only the rows of child for which Condition evaluates true.
type Filter struct {
	UnaryNode
	Condition sql.Expression
}

var _ sql.Expressioner = (*Filter)(nil)

func NewFilter(condition sql.Expression, child sql.Node) *Filter {
	return &Filter{UnaryNode{child}, condition}
}

func (f *Filter) Resolved() bool {
	return f.Child.Resolved() && f.Condition.Resolved()
}

func (f *Filter) Output() []sql.Attribute { return f.Child.Output() }

func (f *Filter) Expressions() []sql.Expression { return []sql.Expression{f.Condition} }

func (f *Filter) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(f, len(exprs), 1)
	}
	return NewFilter(exprs[0], f.Child), nil
}

func (f *Filter) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(f, len(children), 1)
	}
	return NewFilter(f.Condition, children[0]), nil
}

func (f *Filter) String() string { return fmt.Sprintf("Filter(%s)", f.Condition) }
