package analyzer

// RuleId names every analysis rule for tracing and test isolation.
// Grounded on the teacher's rule_ids.go iota-block pattern, trimmed to the
// rules this core actually implements (spec.md §4.4's resolution rules,
// plus the type-check and post-analysis check batches). The id order is not
// the batch order; the batches in analyzer.go fix the order rules run in.
type RuleId int

const (
	InlineCTERelationsId RuleId = iota
	ResolveRelationsId
	ResolveNaturalJoinsId
	ResolveFunctionsId
	ExpandStarsId
	ResolveReferencesId
	ResolveAliasesId
	DeduplicateReferencesId
	RewriteDistinctAggregateFunctionsId
	ResolveSortReferencesId
	RewriteDistinctsAsAggregatesId
	ResolveOrderbyLiteralsId
	GlobalAggregatesId
	MergeHavingConditionsId
	MergeSortsOverAggregatesId
	ResolveAggregatesId
	TypeCheckId
	PostAnalysisChecksId
)

var ruleNames = map[RuleId]string{
	InlineCTERelationsId:                "InlineCTERelations",
	ResolveRelationsId:                  "ResolveRelations",
	ResolveNaturalJoinsId:               "ResolveNaturalJoins",
	ResolveFunctionsId:                  "ResolveFunctions",
	ExpandStarsId:                       "ExpandStars",
	ResolveReferencesId:                 "ResolveReferences",
	ResolveAliasesId:                    "ResolveAliases",
	DeduplicateReferencesId:             "DeduplicateReferences",
	RewriteDistinctAggregateFunctionsId: "RewriteDistinctAggregateFunctions",
	ResolveSortReferencesId:             "ResolveSortReferences",
	RewriteDistinctsAsAggregatesId:      "RewriteDistinctsAsAggregates",
	ResolveOrderbyLiteralsId:            "ResolveOrderbyLiterals",
	GlobalAggregatesId:                  "GlobalAggregates",
	MergeHavingConditionsId:             "MergeHavingConditions",
	MergeSortsOverAggregatesId:          "MergeSortsOverAggregates",
	ResolveAggregatesId:                 "ResolveAggregates",
	TypeCheckId:                         "TypeCheck",
	PostAnalysisChecksId:                "PostAnalysisChecks",
}

func (id RuleId) String() string {
	if name, ok := ruleNames[id]; ok {
		return name
	}
	return "unknown"
}

// RuleSelector filters which rules a batch actually runs; used by tests
// that want to exercise one rule in isolation without running the whole
// resolution batch around it.
type RuleSelector func(RuleId) bool

// AllRules is the default RuleSelector: every rule runs.
func AllRules(RuleId) bool { return true }

// OnlyRules returns a RuleSelector that runs exactly the named rules.
func OnlyRules(ids ...RuleId) RuleSelector {
	set := make(map[RuleId]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(id RuleId) bool { return set[id] }
}
