package analyzer

import (
	"fmt"

	"github.com/mitchellh/hashstructure"

	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/plan"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
)

// resolveAggregates implements spec.md §4.4's ResolveAggregates, the
// hardest rule in the batch. It binds grouping keys and collected aggregate
// functions to fresh generated attributes, rewrites the surrounding
// project/having/order against those attributes, and reassembles the
// Aggregate node plus its optional Filter/Sort/Project wrapping.
//
// By the time this rule runs, RewriteDistinctAggregateFunctions has
// already failed analysis on any surviving DistinctAggregateFunction, so
// step 2's distinct-specific collection branch can never fire here — every
// aggregate function this rule ever sees is a plain expression.Aggregation.
// Condition (i) of the skip rule ("not immediately followed by a
// filter/sort still needing merging") needs no explicit check either:
// MergeHavingConditions and MergeSortsOverAggregates run earlier in the
// same pass, so any adjacent Filter/Sort has already been folded in by the
// time this rule's pipeline stage sees the tree.
func resolveAggregates(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	return transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		agg, ok := node.(*plan.UnresolvedAggregate)
		if !ok {
			return node, transform.SameTree, nil
		}
		if !agg.Child.Resolved() || !allExprsResolved(agg.GroupingKeys) || !allExprsResolved(agg.AllExpressions()) {
			return node, transform.SameTree, nil
		}

		out, err := rewriteAggregate(agg)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return out, transform.NewTree, nil
	})
}

func allExprsResolved(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if !e.Resolved() {
			return false
		}
	}
	return true
}

func rewriteAggregate(agg *plan.UnresolvedAggregate) (sql.Node, error) {
	// Step 1: bind each grouping key to a fresh GroupingAlias; build Sk.
	groupingAliases := make([]sql.Expression, len(agg.GroupingKeys))
	keyFrom := make([]sql.Expression, len(agg.GroupingKeys))
	keyTo := make([]sql.Expression, len(agg.GroupingKeys))
	for i, key := range agg.GroupingKeys {
		alias := expression.NewGroupingAlias(displayNameOf(key), key)
		groupingAliases[i] = alias
		keyFrom[i] = key
		keyTo[i] = expression.NewAttributeRef(attributeOf(alias))
	}

	all := agg.AllExpressions()

	// Step 3, checked up front: no aggregate function may contain another.
	if err := rejectNestedAggregates(agg.ProjectList, "SELECT field"); err != nil {
		return nil, err
	}
	if err := rejectNestedAggregates(agg.HavingConditions, "HAVING condition"); err != nil {
		return nil, err
	}
	if err := rejectNestedAggregates(orderExprs(agg.Order), "ORDER BY expression"); err != nil {
		return nil, err
	}

	// Step 2: collect aggregate functions from projectList, having, order,
	// in that order, de-duplicated by structural equality.
	dedupedAggs, err := dedupeAggregates(collectAggregates(all))
	if err != nil {
		return nil, err
	}

	// Step 4: bind each collected aggregate to a fresh AggregationAlias;
	// build Sa.
	aggregationAliases := make([]sql.Expression, len(dedupedAggs))
	aggFrom := make([]sql.Expression, len(dedupedAggs))
	aggTo := make([]sql.Expression, len(dedupedAggs))
	for i, fn := range dedupedAggs {
		alias := expression.NewAggregationAlias(fn.Name(), fn)
		aggregationAliases[i] = alias
		aggFrom[i] = fn
		aggTo[i] = expression.NewAttributeRef(attributeOf(alias))
	}

	keySubs, err := buildSubstitution(keyFrom, keyTo)
	if err != nil {
		return nil, err
	}
	aggSubs, err := buildSubstitution(aggFrom, aggTo)
	if err != nil {
		return nil, err
	}
	substitute := func(e sql.Expression) (sql.Expression, error) {
		e, err := applySubstitution(e, keySubs)
		if err != nil {
			return nil, err
		}
		return applySubstitution(e, aggSubs)
	}

	// Step 5: rewrite projectList/having/order applying Sk then Sa,
	// re-aliasing a top-level entry that collapsed to a bare generated
	// attribute back to its pre-rewrite display name.
	newProjectList := make([]sql.Expression, len(agg.ProjectList))
	for i, e := range agg.ProjectList {
		name := ""
		if named, ok := e.(sql.NamedExpression); ok {
			name = named.Name()
		}
		rewritten, err := substitute(e)
		if err != nil {
			return nil, err
		}
		if _, ok := rewritten.(*expression.AttributeRef); ok && name != "" {
			rewritten = expression.NewAlias(name, rewritten)
		}
		newProjectList[i] = rewritten
	}

	newHaving := make([]sql.Expression, len(agg.HavingConditions))
	for i, e := range agg.HavingConditions {
		rewritten, err := substitute(e)
		if err != nil {
			return nil, err
		}
		newHaving[i] = rewritten
	}

	newOrder := make([]plan.SortField, len(agg.Order))
	for i, f := range agg.Order {
		rewritten, err := substitute(f.Expr)
		if err != nil {
			return nil, err
		}
		newOrder[i] = plan.SortField{Expr: rewritten, Direction: f.Direction}
	}

	// Step 6: dangling-attribute check.
	freshIds := make(map[sql.ExpressionId]bool, len(groupingAliases)+len(aggregationAliases))
	for _, e := range groupingAliases {
		freshIds[e.(sql.NamedExpression).Id()] = true
	}
	for _, e := range aggregationAliases {
		freshIds[e.(sql.NamedExpression).Id()] = true
	}
	if err := checkNoDanglingAttributes(newProjectList, "SELECT field", freshIds); err != nil {
		return nil, err
	}
	if err := checkNoDanglingAttributes(newHaving, "HAVING condition", freshIds); err != nil {
		return nil, err
	}
	if err := checkNoDanglingAttributes(orderExprs(newOrder), "ORDER BY expression", freshIds); err != nil {
		return nil, err
	}

	// Step 7: Aggregate, then optional Filter, then optional Sort, then the
	// outer Project.
	var result sql.Node = plan.NewAggregate(agg.Child, groupingAliases, aggregationAliases)
	if len(newHaving) > 0 {
		cond := newHaving[0]
		for _, c := range newHaving[1:] {
			cond = expression.NewAnd(cond, c)
		}
		result = plan.NewFilter(cond, result)
	}
	if len(newOrder) > 0 {
		result = plan.NewSort(newOrder, result)
	}
	return plan.NewProject(newProjectList, result), nil
}

func orderExprs(order []plan.SortField) []sql.Expression {
	out := make([]sql.Expression, len(order))
	for i, f := range order {
		out[i] = f.Expr
	}
	return out
}

func displayNameOf(e sql.Expression) string {
	if named, ok := e.(sql.NamedExpression); ok {
		return named.Name()
	}
	return e.String()
}

func attributeOf(e sql.Expression) sql.Attribute {
	named := e.(sql.NamedExpression)
	qualifier := ""
	if q, ok := named.(sql.Qualifiable); ok {
		qualifier = q.Qualifier()
	}
	return sql.Attribute{
		Id:        named.Id(),
		Name:      named.Name(),
		Qualifier: qualifier,
		Type:      named.Type(),
		Nullable:  named.IsNullable(),
	}
}

// rejectNestedAggregates fails IllegalAggregation if any aggregate function
// in exprs contains another aggregate function in its own subtree.
func rejectNestedAggregates(exprs []sql.Expression, part string) error {
	for _, e := range exprs {
		if outer, ok := firstNestedAggregate(e); ok {
			return sql.ErrIllegalAggregation.New(part, outer.String())
		}
	}
	return nil
}

func firstNestedAggregate(e sql.Expression) (sql.Expression, bool) {
	var offender sql.Expression
	transform.InspectExpr(e, func(node sql.Expression) bool {
		if offender != nil {
			return false
		}
		agg, ok := node.(expression.Aggregation)
		if !ok {
			return true
		}
		for _, c := range agg.Children() {
			transform.InspectExpr(c, func(inner sql.Expression) bool {
				if _, ok := inner.(expression.Aggregation); ok {
					offender = node
					return false
				}
				return true
			})
			if offender != nil {
				break
			}
		}
		return true
	})
	return offender, offender != nil
}

// collectAggregates gathers every top-level aggregate function in exprs,
// not descending into one once found (spec.md §4.4 step 2); callers must
// have already ruled out nesting via rejectNestedAggregates.
func collectAggregates(exprs []sql.Expression) []expression.Aggregation {
	var out []expression.Aggregation
	for _, e := range exprs {
		transform.InspectExpr(e, func(node sql.Expression) bool {
			if agg, ok := node.(expression.Aggregation); ok {
				out = append(out, agg)
				return false
			}
			return true
		})
	}
	return out
}

func dedupeAggregates(aggs []expression.Aggregation) ([]expression.Aggregation, error) {
	seen := make(map[uint64]bool, len(aggs))
	out := make([]expression.Aggregation, 0, len(aggs))
	for _, agg := range aggs {
		key, err := structuralKey(agg)
		if err != nil {
			return nil, err
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, agg)
	}
	return out, nil
}

// exprShape is the canonical, fully-exported representation structuralKey
// hashes with hashstructure — expression structs themselves carry
// unexported fields (literal values, attribute ids) that hashstructure's
// reflection-based hasher would silently ignore.
type exprShape struct {
	Kind     string
	Attr     sql.ExpressionId
	Literal  string
	Children []exprShape
}

func shapeOf(e sql.Expression) exprShape {
	kind := fmt.Sprintf("%T", e)
	if named, ok := e.(sql.Nameable); ok {
		kind += ":" + named.Name()
	}

	switch v := e.(type) {
	case *expression.AttributeRef:
		return exprShape{Kind: kind, Attr: v.Id()}
	case *expression.Literal:
		return exprShape{Kind: kind, Literal: fmt.Sprintf("%v:%s", v.Value(), v.Type())}
	}

	children := e.Children()
	shapes := make([]exprShape, len(children))
	for i, c := range children {
		shapes[i] = shapeOf(c)
	}
	return exprShape{Kind: kind, Children: shapes}
}

// structuralKey hashes e's canonical shape, implementing the "structural
// equality" spec.md §4.4 step 2 requires for de-duplicating collected
// aggregate functions and for matching grouping-key/aggregate
// substitutions in step 5.
func structuralKey(e sql.Expression) (uint64, error) {
	return hashstructure.Hash(shapeOf(e), nil)
}

func buildSubstitution(froms, tos []sql.Expression) (map[uint64]sql.Expression, error) {
	subs := make(map[uint64]sql.Expression, len(froms))
	for i, f := range froms {
		key, err := structuralKey(f)
		if err != nil {
			return nil, err
		}
		subs[key] = tos[i]
	}
	return subs, nil
}

// applySubstitution rewrites e top-down, replacing any subtree whose
// structural key matches a key of subs with its mapped replacement.
func applySubstitution(e sql.Expression, subs map[uint64]sql.Expression) (sql.Expression, error) {
	out, _, err := transform.ExprDown(e, func(node sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		key, err := structuralKey(node)
		if err != nil {
			return node, transform.SameTree, err
		}
		if to, ok := subs[key]; ok {
			return to, transform.NewTree, nil
		}
		return node, transform.SameTree, nil
	})
	return out, err
}

// checkNoDanglingAttributes fails IllegalAggregation if exprs contains an
// AttributeRef that isn't one of the grouping/aggregation attributes just
// minted — meaning the original expression referenced a column neither
// grouped nor aggregated (spec.md §4.4 step 6).
func checkNoDanglingAttributes(exprs []sql.Expression, part string, freshIds map[sql.ExpressionId]bool) error {
	for _, e := range exprs {
		var offender *expression.AttributeRef
		transform.InspectExpr(e, func(node sql.Expression) bool {
			if ref, ok := node.(*expression.AttributeRef); ok && !freshIds[ref.Id()] {
				offender = ref
				return false
			}
			return true
		})
		if offender != nil {
			return sql.ErrIllegalAggregation.New(part, offender.String())
		}
	}
	return nil
}
