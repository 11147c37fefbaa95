package plan

import (
	"fmt"
	"strings"

	"github.com/arcdb/sqlplan/sql"
)

// Project evaluates projectList against child's rows, producing one output
// attribute per projected expression.
type Project struct {
	UnaryNode
	ProjectList []sql.Expression
}

var _ sql.Expressioner = (*Project)(nil)

// NewProject builds a Project node. Every element of projectList must be a
// sql.NamedExpression once resolved; Output panics otherwise, matching the
// other placeholder-unresolved panics in this core.
func NewProject(projectList []sql.Expression, child sql.Node) *Project {
	return &Project{UnaryNode{child}, projectList}
}

func (p *Project) Resolved() bool {
	return p.Child.Resolved() && expressionsResolved(p.ProjectList...)
}

func (p *Project) Output() []sql.Attribute {
	return namedExpressionsToSchema(p.ProjectList)
}

func (p *Project) Expressions() []sql.Expression { return p.ProjectList }

func (p *Project) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(p.ProjectList) {
		return nil, sql.ErrInvalidChildrenCount.New(p, len(exprs), len(p.ProjectList))
	}
	return NewProject(exprs, p.Child), nil
}

func (p *Project) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(p, len(children), 1)
	}
	return NewProject(p.ProjectList, children[0]), nil
}

func (p *Project) String() string {
	exprs := make([]string, len(p.ProjectList))
	for i, e := range p.ProjectList {
		exprs[i] = e.String()
	}
	return fmt.Sprintf("Project(%s)", strings.Join(exprs, ", "))
}

// namedExpressionsToSchema converts a resolved projection list into the
// Attribute list a Node's Output must return. Every element must implement
// sql.NamedExpression by the time a plan is resolved (spec.md §3); a Star
// surviving this far is a bug in ExpandStars, not a user-facing error.
func namedExpressionsToSchema(exprs []sql.Expression) sql.Schema {
	schema := make(sql.Schema, len(exprs))
	for i, e := range exprs {
		named, ok := e.(sql.NamedExpression)
		if !ok {
			panic(fmt.Sprintf("plan: expression %s in projection is not a NamedExpression", e))
		}
		qualifier := ""
		if q, ok := named.(sql.Qualifiable); ok {
			qualifier = q.Qualifier()
		}
		schema[i] = sql.Attribute{
			Id:        named.Id(),
			Name:      named.Name(),
			Qualifier: qualifier,
			Type:      named.Type(),
			Nullable:  named.IsNullable(),
		}
	}
	return schema
}
