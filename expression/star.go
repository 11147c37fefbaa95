package expression

import (
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/types"
)

// Star represents `*` or `qualifier.*`. It is a placeholder node that
// ExpandStars replaces with the concrete output attributes of the child
// plan before resolution proceeds; Type, IsNullable, and Foldable must
// never be called on it.
//
// Grounded on the teacher's expression.Star (sql/expression/star.go).
type Star struct {
	qualifier string
}

var _ sql.Expression = (*Star)(nil)
var _ sql.Qualifiable = (*Star)(nil)

// NewStar returns an unqualified Star.
func NewStar() *Star { return &Star{} }

// NewQualifiedStar returns a Star qualified by a table/relation name.
func NewQualifiedStar(qualifier string) *Star { return &Star{qualifier: qualifier} }

func (s *Star) Qualifier() string { return s.qualifier }

func (s *Star) Resolved() bool { return false }

func (s *Star) Type() types.DataType {
	panic("Star is a placeholder node, but Type was called")
}

func (s *Star) IsNullable() bool {
	panic("Star is a placeholder node, but IsNullable was called")
}

func (s *Star) Foldable() bool { return false }

func (s *Star) Children() []sql.Expression { return nil }

func (s *Star) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenCount.New(s, len(children), 0)
	}
	return s, nil
}

func (s *Star) String() string {
	if s.qualifier == "" {
		return "*"
	}
	return s.qualifier + ".*"
}
