package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcdb/sqlplan/plan"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
	"github.com/arcdb/sqlplan/types"
)

// TestDeduplicateReferencesSelfJoin covers spec.md §8's self-join scenario:
// two lookups of the same table produce Relation instances with identical
// attribute ids, and the right side must get fresh ones before the join can
// be resolved further.
func TestDeduplicateReferencesSelfJoin(t *testing.T) {
	schema := sql.Schema{
		{Id: 1, Name: "id", Qualifier: "t", Type: types.Int32},
		{Id: 2, Name: "parent_id", Qualifier: "t", Type: types.Int32},
	}
	left := plan.NewRelation("t", "t", append(sql.Schema{}, schema...))
	right := plan.NewRelation("t", "t2", append(sql.Schema{}, schema...))
	join := plan.NewJoin(plan.InnerJoin, left, right, nil)

	out, identity, err := deduplicateReferences(testContext(), nil, join)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	newJoin := out.(*plan.Join)
	newRight := newJoin.Right.(*plan.Relation)

	leftIds := map[sql.ExpressionId]bool{}
	for _, a := range newJoin.Left.Output() {
		leftIds[a.Id] = true
	}
	for _, a := range newRight.Output() {
		require.False(t, leftIds[a.Id], "right side id %d still collides with the left side", a.Id)
	}
	require.Equal(t, "id", newRight.Output()[0].Name)
	require.Equal(t, "parent_id", newRight.Output()[1].Name)
}

// TestDeduplicateReferencesNoCollision leaves a join over two distinct
// tables untouched.
func TestDeduplicateReferencesNoCollision(t *testing.T) {
	left := plan.NewRelation("t", "t", sql.Schema{{Id: 1, Name: "id", Qualifier: "t", Type: types.Int32}})
	right := plan.NewRelation("u", "u", sql.Schema{{Id: 2, Name: "id", Qualifier: "u", Type: types.Int32}})
	join := plan.NewJoin(plan.InnerJoin, left, right, nil)

	out, identity, err := deduplicateReferences(testContext(), nil, join)
	require.NoError(t, err)
	require.Equal(t, transform.SameTree, identity)
	require.Same(t, join, out)
}
