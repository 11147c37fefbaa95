package plan

import (
	"fmt"

	"github.com/arcdb/sqlplan/sql"
)

// JoinType distinguishes the supported join kinds.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	CrossJoin
)

func (t JoinType) String() string {
	switch t {
	case LeftJoin:
		return "LEFT"
	case RightJoin:
		return "RIGHT"
	case CrossJoin:
		return "CROSS"
	default:
		return "INNER"
	}
}

// Join combines Left and Right's rows, filtered by Condition for every kind
// but CrossJoin, where Condition is nil.
//
// Grounded on the teacher's BinaryNode-embedding join nodes
// (sql/plan/cross_join.go and the join condition carried by inner_join.go),
// collapsed here into one parameterized node since this core never
// executes joins and so has no reason to give each kind its own Go type.
type Join struct {
	BinaryNode
	Type      JoinType
	Condition sql.Expression
}

var _ sql.Expressioner = (*Join)(nil)

func NewJoin(joinType JoinType, left, right sql.Node, condition sql.Expression) *Join {
	return &Join{BinaryNode{left, right}, joinType, condition}
}

func (j *Join) Resolved() bool {
	if !j.Left.Resolved() || !j.Right.Resolved() {
		return false
	}
	return j.Condition == nil || j.Condition.Resolved()
}

func (j *Join) Output() []sql.Attribute {
	return append(append(sql.Schema{}, j.Left.Output()...), j.Right.Output()...)
}

func (j *Join) Expressions() []sql.Expression {
	if j.Condition == nil {
		return nil
	}
	return []sql.Expression{j.Condition}
}

func (j *Join) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if j.Condition == nil {
		if len(exprs) != 0 {
			return nil, sql.ErrInvalidChildrenCount.New(j, len(exprs), 0)
		}
		return j, nil
	}
	if len(exprs) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(j, len(exprs), 1)
	}
	return NewJoin(j.Type, j.Left, j.Right, exprs[0]), nil
}

func (j *Join) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenCount.New(j, len(children), 2)
	}
	return NewJoin(j.Type, children[0], children[1], j.Condition), nil
}

func (j *Join) String() string {
	if j.Condition == nil {
		return fmt.Sprintf("%sJoin", j.Type)
	}
	return fmt.Sprintf("%sJoin(%s)", j.Type, j.Condition)
}
