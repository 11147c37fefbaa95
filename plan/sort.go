package plan

import (
	"fmt"
	"strings"

	"github.com/arcdb/sqlplan/sql"
)

// SortDirection is either ascending or descending.
type SortDirection bool

const (
	Ascending  SortDirection = true
	Descending SortDirection = false
)

func (d SortDirection) String() string {
	if d == Ascending {
		return "ASC"
	}
	return "DESC"
}

// SortField pairs an ordering expression with its direction.
type SortField struct {
	Expr      sql.Expression
	Direction SortDirection
}

// Sort orders child's rows by Order, in listed priority.
type Sort struct {
	UnaryNode
	Order []SortField
}

var _ sql.Expressioner = (*Sort)(nil)

func NewSort(order []SortField, child sql.Node) *Sort {
	return &Sort{UnaryNode{child}, order}
}

func (s *Sort) Resolved() bool {
	if !s.Child.Resolved() {
		return false
	}
	for _, f := range s.Order {
		if !f.Expr.Resolved() {
			return false
		}
	}
	return true
}

func (s *Sort) Output() []sql.Attribute { return s.Child.Output() }

func (s *Sort) Expressions() []sql.Expression {
	exprs := make([]sql.Expression, len(s.Order))
	for i, f := range s.Order {
		exprs[i] = f.Expr
	}
	return exprs
}

func (s *Sort) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(s.Order) {
		return nil, sql.ErrInvalidChildrenCount.New(s, len(exprs), len(s.Order))
	}
	order := make([]SortField, len(exprs))
	for i, e := range exprs {
		order[i] = SortField{Expr: e, Direction: s.Order[i].Direction}
	}
	return NewSort(order, s.Child), nil
}

func (s *Sort) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(s, len(children), 1)
	}
	return NewSort(s.Order, children[0]), nil
}

func (s *Sort) String() string {
	parts := make([]string, len(s.Order))
	for i, f := range s.Order {
		parts[i] = fmt.Sprintf("%s %s", f.Expr, f.Direction)
	}
	return fmt.Sprintf("Sort(%s)", strings.Join(parts, ", "))
}
