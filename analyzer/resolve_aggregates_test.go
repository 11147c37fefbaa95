package analyzer

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/plan"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
	"github.com/arcdb/sqlplan/types"
)

func testContext() *sql.Context {
	return sql.NewContext(context.Background(), sql.DefaultConfig(), nil)
}

func col(id sql.ExpressionId, name string, t types.DataType) *expression.AttributeRef {
	return expression.NewAttributeRef(sql.Attribute{Id: id, Name: name, Qualifier: "orders", Type: t})
}

// TestResolveAggregatesGroupByWithHavingAndOrder covers spec.md §8's core
// scenario: SELECT customer_id, SUM(total) FROM orders GROUP BY customer_id
// HAVING SUM(total) > 100 ORDER BY SUM(total) DESC — the HAVING and ORDER BY
// clauses reference the same aggregate already projected, so it must be
// collected once (deduped) and bound to a single AggregationAlias shared by
// all three clauses.
func TestResolveAggregatesGroupByWithHavingAndOrder(t *testing.T) {
	rel := plan.NewRelation("orders", "orders", sql.Schema{
		{Id: 1, Name: "customer_id", Qualifier: "orders", Type: types.Int32},
		{Id: 2, Name: "total", Qualifier: "orders", Type: types.Int64},
	})

	customerId := col(1, "customer_id", types.Int32)
	total := col(2, "total", types.Int64)
	sumTotal := expression.NewSum(total)
	sumTotalAgain := expression.NewSum(col(2, "total", types.Int64))

	agg := plan.NewUnresolvedAggregate(
		rel,
		[]sql.Expression{customerId},
		[]sql.Expression{customerId, expression.NewAlias("total_sum", sumTotal)},
		[]sql.Expression{expression.NewGreaterThan(sumTotalAgain, expression.NewLiteral(int64(100), types.Int64))},
		[]plan.SortField{{Expr: expression.NewSum(col(2, "total", types.Int64)), Direction: plan.Descending}},
	)

	out, identity, err := resolveAggregates(testContext(), nil, agg)
	require.NoError(t, err)
	require.Equal(t, transform.NewTree, identity)

	proj, ok := out.(*plan.Project)
	require.True(t, ok, "expected outer Project, got %T", out)
	require.Len(t, proj.ProjectList, 2)

	sort, ok := proj.Child.(*plan.Sort)
	require.True(t, ok, "expected Sort wrapping the Aggregate, got %T", proj.Child)

	filter, ok := sort.Child.(*plan.Filter)
	require.True(t, ok, "expected Filter wrapping the Aggregate, got %T", sort.Child)

	aggregate, ok := filter.Child.(*plan.Aggregate)
	require.True(t, ok, "expected Aggregate at the core, got %T", filter.Child)
	require.Len(t, aggregate.GroupingAliases, 1)
	require.Len(t, aggregate.AggregationAliases, 1, "the two SUM(total) occurrences must dedupe to one")

	sumAttr := aggregate.AggregationAliases[0].(sql.NamedExpression).Id()
	havingRef, ok := filter.Condition.(*expression.GreaterThan).Children()[0].(*expression.AttributeRef)
	require.True(t, ok, "HAVING condition must reference the aggregation attribute")
	require.Equal(t, sumAttr, havingRef.Id())

	sortRef, ok := sort.Order[0].Expr.(*expression.AttributeRef)
	require.True(t, ok, "ORDER BY must reference the aggregation attribute")
	require.Equal(t, sumAttr, sortRef.Id())
}

// TestResolveAggregatesGlobalAggregateNoGroupingKeys covers a bare
// SELECT COUNT(*) FROM orders with no GROUP BY: GroupingKeys is empty, so
// the resulting Aggregate has no GroupingAliases and the outer Project has
// no Sort/Filter wrapping.
func TestResolveAggregatesGlobalAggregateNoGroupingKeys(t *testing.T) {
	rel := plan.NewRelation("orders", "orders", sql.Schema{
		{Id: 1, Name: "id", Qualifier: "orders", Type: types.Int32},
	})
	count := expression.NewCount(expression.NewLiteral(int32(1), types.Int32))
	agg := plan.NewUnresolvedAggregate(rel, nil, []sql.Expression{expression.NewAlias("n", count)}, nil, nil)

	out, _, err := resolveAggregates(testContext(), nil, agg)
	require.NoError(t, err)

	proj := out.(*plan.Project)
	aggregate := proj.Child.(*plan.Aggregate)
	require.Empty(t, aggregate.GroupingAliases)
	require.Len(t, aggregate.AggregationAliases, 1)
}

// TestResolveAggregatesRejectsNestedAggregate covers SELECT SUM(COUNT(x)) —
// illegal per spec.md §4.4 step 3 regardless of any GROUP BY clause.
func TestResolveAggregatesRejectsNestedAggregate(t *testing.T) {
	rel := plan.NewRelation("t", "t", sql.Schema{{Id: 1, Name: "x", Qualifier: "t", Type: types.Int32}})
	inner := expression.NewCount(col(1, "x", types.Int32))
	outer := expression.NewSum(inner)
	agg := plan.NewUnresolvedAggregate(rel, nil, []sql.Expression{outer}, nil, nil)

	_, _, err := resolveAggregates(testContext(), nil, agg)
	require.Error(t, err)
	require.True(t, sql.ErrIllegalAggregation.Is(err))
}

// TestResolveAggregatesRejectsDanglingAttribute covers
// SELECT customer_id, name FROM orders GROUP BY customer_id — name is
// neither grouped nor aggregated.
func TestResolveAggregatesRejectsDanglingAttribute(t *testing.T) {
	rel := plan.NewRelation("orders", "orders", sql.Schema{
		{Id: 1, Name: "customer_id", Qualifier: "orders", Type: types.Int32},
		{Id: 2, Name: "name", Qualifier: "orders", Type: types.String},
	})
	customerId := col(1, "customer_id", types.Int32)
	name := col(2, "name", types.String)
	agg := plan.NewUnresolvedAggregate(rel, []sql.Expression{customerId}, []sql.Expression{customerId, name}, nil, nil)

	_, _, err := resolveAggregates(testContext(), nil, agg)
	require.Error(t, err)
	require.True(t, sql.ErrIllegalAggregation.Is(err))
}

// TestResolveAggregatesPreservesProjectListDisplayNames checks that a bare
// grouping-key reference in the project list keeps its original column
// name after being rewritten to reference the fresh GroupingAlias
// attribute.
func TestResolveAggregatesPreservesProjectListDisplayNames(t *testing.T) {
	rel := plan.NewRelation("orders", "orders", sql.Schema{
		{Id: 1, Name: "customer_id", Qualifier: "orders", Type: types.Int32},
	})
	customerId := col(1, "customer_id", types.Int32)
	agg := plan.NewUnresolvedAggregate(rel, []sql.Expression{customerId}, []sql.Expression{customerId}, nil, nil)

	out, _, err := resolveAggregates(testContext(), nil, agg)
	require.NoError(t, err)

	proj := out.(*plan.Project)
	names := make([]string, len(proj.ProjectList))
	for i, e := range proj.ProjectList {
		names[i] = e.(sql.NamedExpression).Name()
	}
	if diff := cmp.Diff([]string{"customer_id"}, names, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("project list display names mismatch (-want +got):\n%s", diff)
	}
}
