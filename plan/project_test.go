package plan

import (
	"testing"

	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/types"
	"github.com/stretchr/testify/require"
)

func aRef(name string, t types.DataType) *expression.AttributeRef {
	return expression.NewAttributeRef(sql.Attribute{Id: 1, Name: name, Type: t})
}

func TestProjectOutputTracksProjectList(t *testing.T) {
	rel := NewRelation("t", "t", sql.Schema{{Id: 1, Name: "a", Type: types.Int32}})
	alias := expression.NewAlias("b", aRef("a", types.Int32))
	p := NewProject([]sql.Expression{alias}, rel)

	require.True(t, p.Resolved())
	out := p.Output()
	require.Len(t, out, 1)
	require.Equal(t, "b", out[0].Name)
}

func TestProjectWithChildrenPreservesProjectList(t *testing.T) {
	rel := NewRelation("t", "t", sql.Schema{{Id: 1, Name: "a", Type: types.Int32}})
	other := NewRelation("u", "u", sql.Schema{{Id: 2, Name: "a", Type: types.Int32}})
	p := NewProject([]sql.Expression{aRef("a", types.Int32)}, rel)

	rewritten, err := p.WithChildren(other)
	require.NoError(t, err)
	require.Same(t, other, rewritten.(*Project).Child)
	require.Equal(t, p.ProjectList, rewritten.(*Project).ProjectList)
}
