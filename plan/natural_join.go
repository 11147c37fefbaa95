package plan

import (
	"fmt"
	"strings"

	"github.com/arcdb/sqlplan/sql"
)

// NaturalJoin is the pre-desugar shape a `NATURAL JOIN` or `JOIN ... USING
// (cols)` parses into. ResolveNaturalJoins (SPEC_FULL.md §6) replaces it
// with an equi-Join plus a deduplicating Project once both sides are
// resolved enough to know their output schemas.
type NaturalJoin struct {
	BinaryNode
	Type    JoinType
	Natural bool
	Using   []string
}

var _ sql.Node = (*NaturalJoin)(nil)

func NewNaturalJoin(joinType JoinType, left, right sql.Node, natural bool, using []string) *NaturalJoin {
	return &NaturalJoin{BinaryNode{left, right}, joinType, natural, using}
}

func (n *NaturalJoin) Resolved() bool { return false }

func (n *NaturalJoin) Output() []sql.Attribute {
	panic("NaturalJoin is a placeholder node, but Output was called")
}

func (n *NaturalJoin) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenCount.New(n, len(children), 2)
	}
	return NewNaturalJoin(n.Type, children[0], children[1], n.Natural, n.Using), nil
}

func (n *NaturalJoin) String() string {
	if n.Natural {
		return fmt.Sprintf("NaturalJoin(%s)", n.Type)
	}
	return fmt.Sprintf("Join(%s USING (%s))", n.Type, strings.Join(n.Using, ", "))
}
