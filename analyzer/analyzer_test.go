package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcdb/sqlplan/catalog"
	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/plan"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/types"
)

// TestAnalyzeGroupByHavingOrderEndToEnd runs the full Analyzer pipeline —
// not a single rule in isolation — over spec.md §8's core scenario, built
// the way a parser would actually shape it: a Sort over a Filter over an
// UnresolvedAggregate, both wrappers still carrying unresolved references
// to the same aggregate function the project list also selects. This is
// the path that exercises postAnalysisChecks on a real resolved Aggregate
// node, catching regressions a unit test calling resolveAggregates
// directly never would.
func TestAnalyzeGroupByHavingOrderEndToEnd(t *testing.T) {
	cat := catalog.NewMemoryCatalog()
	catalog.RegisterBuiltins(cat)
	cat.AddRelation("orders", plan.NewRelation("orders", "orders", sql.Schema{
		{Id: 1, Name: "customer_id", Qualifier: "orders", Type: types.Int32},
		{Id: 2, Name: "total", Qualifier: "orders", Type: types.Int64},
	}))

	agg := plan.NewUnresolvedAggregate(
		plan.NewUnresolvedRelation("orders", ""),
		[]sql.Expression{expression.NewUnresolvedAttribute("customer_id")},
		[]sql.Expression{
			expression.NewUnresolvedAttribute("customer_id"),
			expression.NewAlias("total_sum", expression.NewUnresolvedFunction("sum", false, expression.NewUnresolvedAttribute("total"))),
		},
		nil,
		nil,
	)
	having := plan.NewFilter(
		expression.NewGreaterThan(
			expression.NewUnresolvedFunction("sum", false, expression.NewUnresolvedAttribute("total")),
			expression.NewLiteral(int64(100), types.Int64),
		),
		agg,
	)
	query := plan.NewSort(
		[]plan.SortField{{
			Expr:      expression.NewUnresolvedFunction("sum", false, expression.NewUnresolvedAttribute("total")),
			Direction: plan.Descending,
		}},
		having,
	)

	out, err := New(cat).Analyze(testContext(), query)
	require.NoError(t, err)
	require.True(t, out.Resolved())

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

// TestAnalyzeGlobalAggregateEndToEnd covers spec.md §8's bare-aggregate
// scenario (SELECT COUNT(*) FROM t HAVING COUNT(*) > 3) through the full
// pipeline: GlobalAggregates must turn the aggregate-bearing Project into
// an UnresolvedAggregate with no grouping keys before MergeHavingConditions
// can fold the HAVING clause in, and the resolved Aggregate's generated
// aliases must not trip postAnalysisChecks.
func TestAnalyzeGlobalAggregateEndToEnd(t *testing.T) {
	cat := catalog.NewMemoryCatalog()
	catalog.RegisterBuiltins(cat)
	cat.AddRelation("t", plan.NewRelation("t", "t", sql.Schema{
		{Id: 1, Name: "x", Qualifier: "t", Type: types.Int32},
	}))

	projected := plan.NewProject(
		[]sql.Expression{
			expression.NewAlias("n", expression.NewUnresolvedFunction("count", false, expression.NewStar())),
		},
		plan.NewUnresolvedRelation("t", ""),
	)
	query := plan.NewFilter(
		expression.NewGreaterThan(
			expression.NewUnresolvedFunction("count", false, expression.NewStar()),
			expression.NewLiteral(int32(3), types.Int32),
		),
		projected,
	)

	out, err := New(cat).Analyze(testContext(), query)
	require.NoError(t, err)
	require.True(t, out.Resolved())

	proj, ok := out.(*plan.Project)
	require.True(t, ok, "expected outer Project, got %T", out)
	require.Len(t, proj.ProjectList, 1)

	filter, ok := proj.Child.(*plan.Filter)
	require.True(t, ok, "expected Filter wrapping the Aggregate, got %T", proj.Child)

	aggregate, ok := filter.Child.(*plan.Aggregate)
	require.True(t, ok, "expected Aggregate at the core, got %T", filter.Child)
	require.Empty(t, aggregate.GroupingAliases)
	require.Len(t, aggregate.AggregationAliases, 1, "the two COUNT(*) occurrences must dedupe to one")
}
