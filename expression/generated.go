package expression

import (
	"fmt"

	"github.com/arcdb/sqlplan/internal/idgen"
	"github.com/arcdb/sqlplan/sql"
)

// GeneratedNamedExpression is implemented by the internal rewrite artifacts
// ResolveAggregates introduces (GroupingAlias, AggregationAlias). Per
// spec.md §3 these must never appear in the final plan's top-level output;
// the post-analysis check batch rejects any that survive.
type GeneratedNamedExpression interface {
	sql.NamedExpression
	generated()
}

// GroupingAlias binds one grouping key expression to a fresh id so the
// outer projection, having condition, and sort order can all refer to the
// same grouped value by attribute rather than by re-evaluating the key
// expression.
type GroupingAlias struct {
	*Alias
}

var _ GeneratedNamedExpression = (*GroupingAlias)(nil)

func NewGroupingAlias(name string, key sql.Expression) *GroupingAlias {
	return &GroupingAlias{NewAlias(name, key)}
}

func (g *GroupingAlias) generated() {}

func (g *GroupingAlias) String() string {
	return fmt.Sprintf("<grouping:%s>", g.Alias.String())
}

// WithChildren implements sql.Expression, preserving the GroupingAlias tag.
func (g *GroupingAlias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	inner, err := g.Alias.WithChildren(children...)
	if err != nil {
		return nil, err
	}
	return &GroupingAlias{inner.(*Alias)}, nil
}

// AggregationAlias binds one collected aggregate function to a fresh id,
// the analog of GroupingAlias for the aggregate-function side of
// ResolveAggregates.
type AggregationAlias struct {
	*Alias
}

var _ GeneratedNamedExpression = (*AggregationAlias)(nil)

func NewAggregationAlias(name string, aggregate sql.Expression) *AggregationAlias {
	return &AggregationAlias{NewAlias(name, aggregate)}
}

func (g *AggregationAlias) generated() {}

func (g *AggregationAlias) String() string {
	return fmt.Sprintf("<aggregation:%s>", g.Alias.String())
}

func (g *AggregationAlias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	inner, err := g.Alias.WithChildren(children...)
	if err != nil {
		return nil, err
	}
	return &AggregationAlias{inner.(*Alias)}, nil
}

// freshAliasId returns a new expression id from idgen. Nothing calls it at
// present: NewAlias and DeduplicateReferences call idgen.Next directly.
func freshAliasId() sql.ExpressionId {
	return sql.ExpressionId(idgen.Next())
}
