package expression

import (
	"fmt"

	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/internal/idgen"
	"github.com/arcdb/sqlplan/types"
)

// Alias gives a stable name and id to a child expression. Its id is stable
// across rewrites unless a rule (DeduplicateReferences) explicitly
// reassigns it, per spec.md §3's expression-id invariant.
//
// Grounded on the teacher's expression.Alias (sql/expression/alias.go).
type Alias struct {
	UnaryExpression
	name string
	id   sql.ExpressionId
}

var _ sql.Expression = (*Alias)(nil)
var _ sql.NamedExpression = (*Alias)(nil)

// NewAlias creates a new alias with a freshly minted id.
func NewAlias(name string, child sql.Expression) *Alias {
	return &Alias{UnaryExpression: UnaryExpression{Child: child}, name: name, id: sql.ExpressionId(idgen.Next())}
}

// NewAliasWithId creates an alias that reuses an existing id, used when a
// rewrite rebuilds an alias without changing its identity.
func NewAliasWithId(name string, child sql.Expression, id sql.ExpressionId) *Alias {
	return &Alias{UnaryExpression: UnaryExpression{Child: child}, name: name, id: id}
}

func (a *Alias) Name() string { return a.name }

func (a *Alias) Id() sql.ExpressionId { return a.id }

func (a *Alias) Type() types.DataType { return a.Child.Type() }

func (a *Alias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(a, len(children), 1)
	}
	return NewAliasWithId(a.name, children[0], a.id), nil
}

// WithId returns a copy of the alias carrying a new id.
func (a *Alias) WithId(id sql.ExpressionId) *Alias {
	return NewAliasWithId(a.name, a.Child, id)
}

func (a *Alias) String() string {
	return fmt.Sprintf("%s AS %s", a.Child, a.name)
}

// AutoAlias is a pending alias whose name has not yet been decided: the
// parser emits one whenever a projected expression has no explicit AS
// clause. ResolveAliases converts it into a real Alias once its child is
// resolved, naming it from the child's rendered SQL text.
type AutoAlias struct {
	UnaryExpression
}

var _ sql.Expression = (*AutoAlias)(nil)

// NewAutoAlias wraps child in a pending alias.
func NewAutoAlias(child sql.Expression) *AutoAlias {
	return &AutoAlias{UnaryExpression{Child: child}}
}

func (a *AutoAlias) Type() types.DataType { return a.Child.Type() }

func (a *AutoAlias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(a, len(children), 1)
	}
	return NewAutoAlias(children[0]), nil
}

func (a *AutoAlias) String() string { return a.Child.String() }
