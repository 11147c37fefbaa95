package plan

import (
	"github.com/arcdb/sqlplan/sql"
)

// SetOpType distinguishes the supported set operators.
type SetOpType int

const (
	UnionOp SetOpType = iota
	IntersectOp
	ExceptOp
)

func (t SetOpType) String() string {
	switch t {
	case IntersectOp:
		return "Intersect"
	case ExceptOp:
		return "Except"
	default:
		return "Union"
	}
}

// SetOp combines Left and Right's rows per Type. Output is taken from Left;
// the analyzer does not check column-count or type alignment between the
// two sides.
type SetOp struct {
	BinaryNode
	Type SetOpType
}

var _ sql.Node = (*SetOp)(nil)

func NewSetOp(setOpType SetOpType, left, right sql.Node) *SetOp {
	return &SetOp{BinaryNode{left, right}, setOpType}
}

func (s *SetOp) Output() []sql.Attribute { return s.Left.Output() }

func (s *SetOp) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenCount.New(s, len(children), 2)
	}
	return NewSetOp(s.Type, children[0], children[1]), nil
}

func (s *SetOp) String() string { return s.Type.String() }
