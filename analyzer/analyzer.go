// Package analyzer implements the batched fixed-point rule engine and the
// analysis rule set from spec.md §4.2/§4.4: it accepts an unresolved
// logical plan and produces a resolved, strictly-typed one, or a
// structured error from sql's error taxonomy.
//
// Grounded on the teacher's sql/analyzer package: analyzer.go's Builder/
// Analyzer split, batch.go's Batch.Eval loop, and rule_ids.go's RuleId
// scheme.
package analyzer

import (
	"github.com/arcdb/sqlplan/catalog"
	"github.com/arcdb/sqlplan/sql"
)

const defaultMaxAnalysisIterations = 1000

// Analyzer resolves and type-checks a logical plan against a Catalog.
type Analyzer struct {
	Catalog  catalog.Catalog
	Config   sql.Config
	Batches  []*Batch
	selector RuleSelector
}

// Option configures an Analyzer at construction time, mirroring the
// teacher's Builder's chained With* methods collapsed into the
// functional-options idiom this module's other constructors already use.
type Option func(*Analyzer)

// WithConfig overrides the default sql.Config (case sensitivity, etc).
func WithConfig(cfg sql.Config) Option {
	return func(a *Analyzer) { a.Config = cfg }
}

// WithRuleSelector restricts which rules run, for isolating a single rule
// in tests.
func WithRuleSelector(sel RuleSelector) Option {
	return func(a *Analyzer) { a.selector = sel }
}

// WithMaxIterations overrides the resolution batch's FixedPoint limit.
func WithMaxIterations(limit int) Option {
	return func(a *Analyzer) {
		for _, b := range a.Batches {
			if b.Desc == "resolution" {
				b.Strategy = FixedPoint{Limit: limit}
			}
		}
	}
}

// New builds an Analyzer backed by cat, with the standard resolution, type
// check, and post-analysis-check batches in the order spec.md §4.2
// mandates.
func New(cat catalog.Catalog, opts ...Option) *Analyzer {
	a := &Analyzer{
		Catalog:  cat,
		Config:   sql.DefaultConfig(),
		selector: AllRules,
	}
	a.Batches = []*Batch{
		{
			Desc:     "resolution",
			Strategy: FixedPoint{Limit: defaultMaxAnalysisIterations},
			Rules:    resolutionRules(),
		},
		{
			Desc:     "type-check",
			Strategy: Once{},
			Rules:    []Rule{{Id: TypeCheckId, Apply: typeCheck}},
		},
		{
			Desc:     "post-analysis-checks",
			Strategy: Once{},
			Rules:    []Rule{{Id: PostAnalysisChecksId, Apply: postAnalysisChecks}},
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// resolutionRules returns the resolution batch's rules in the exact order
// spec.md §4.2 mandates.
func resolutionRules() []Rule {
	return []Rule{
		{Id: InlineCTERelationsId, Apply: inlineCTERelations},
		{Id: ResolveNaturalJoinsId, Apply: resolveNaturalJoins},
		{Id: ResolveRelationsId, Apply: resolveRelations},
		{Id: ResolveFunctionsId, Apply: resolveFunctions},
		{Id: ExpandStarsId, Apply: expandStars},
		{Id: ResolveReferencesId, Apply: resolveReferences},
		{Id: ResolveAliasesId, Apply: resolveAliases},
		{Id: DeduplicateReferencesId, Apply: deduplicateReferences},
		{Id: RewriteDistinctAggregateFunctionsId, Apply: rewriteDistinctAggregateFunctions},
		{Id: ResolveOrderbyLiteralsId, Apply: resolveOrderbyLiterals},
		{Id: ResolveSortReferencesId, Apply: resolveSortReferences},
		{Id: RewriteDistinctsAsAggregatesId, Apply: rewriteDistinctsAsAggregates},
		{Id: GlobalAggregatesId, Apply: globalAggregates},
		{Id: MergeHavingConditionsId, Apply: mergeHavingConditions},
		{Id: MergeSortsOverAggregatesId, Apply: mergeSortsOverAggregates},
		{Id: ResolveAggregatesId, Apply: resolveAggregates},
	}
}

// ruleEnabled reports whether id should run, per the Analyzer's selector.
func (a *Analyzer) ruleEnabled(id RuleId) bool {
	if a.selector == nil {
		return true
	}
	return a.selector(id)
}

// Analyze runs plan through every batch in order, returning the resolved
// plan or the first fatal error (spec.md §6).
func (a *Analyzer) Analyze(ctx *sql.Context, plan sql.Node) (sql.Node, error) {
	ctx, finish := ctx.Span("analyze")
	defer finish()

	result := plan
	for _, batch := range a.Batches {
		var err error
		result, err = batch.eval(ctx, a, result)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
