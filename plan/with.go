package plan

import (
	"fmt"

	"github.com/arcdb/sqlplan/sql"
)

// With attaches one CTE definition to Child: every UnresolvedRelation named
// Name inside Child should be substituted by CTERelation, wrapped in a
// SubqueryAlias carrying that same name (spec.md §4.4, InlineCTERelations).
type With struct {
	UnaryNode
	Name        string
	CTERelation sql.Node
}

var _ sql.Node = (*With)(nil)

func NewWith(name string, cteRelation, child sql.Node) *With {
	return &With{UnaryNode{child}, name, cteRelation}
}

func (w *With) Resolved() bool {
	return w.Child.Resolved() && w.CTERelation.Resolved()
}

func (w *With) Output() []sql.Attribute { return w.Child.Output() }

func (w *With) Children() []sql.Node { return []sql.Node{w.Child, w.CTERelation} }

func (w *With) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenCount.New(w, len(children), 2)
	}
	return NewWith(w.Name, children[1], children[0]), nil
}

func (w *With) String() string { return fmt.Sprintf("With(%s)", w.Name) }

// SubqueryAlias wraps a relation-producing subtree under a single
// qualifying name, so references to it resolve as if it were a base table.
type SubqueryAlias struct {
	UnaryNode
	Alias string
}

var _ sql.Node = (*SubqueryAlias)(nil)

func NewSubqueryAlias(alias string, child sql.Node) *SubqueryAlias {
	return &SubqueryAlias{UnaryNode{child}, alias}
}

func (s *SubqueryAlias) Output() []sql.Attribute {
	out := s.Child.Output()
	requalified := make(sql.Schema, len(out))
	for i, a := range out {
		requalified[i] = a.WithQualifier(s.Alias)
	}
	return requalified
}

func (s *SubqueryAlias) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(s, len(children), 1)
	}
	return NewSubqueryAlias(s.Alias, children[0]), nil
}

func (s *SubqueryAlias) String() string { return fmt.Sprintf("SubqueryAlias(%s)", s.Alias) }
