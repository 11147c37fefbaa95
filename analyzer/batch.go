package analyzer

import (
	"reflect"

	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/transform"
)

// RuleFunc applies one analysis rule to a plan tree. It must return
// transform.SameTree when it makes no change, so FixedPoint batches can
// detect convergence without a structural-equality pass.
type RuleFunc func(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, transform.TreeIdentity, error)

// Rule pairs a RuleFunc with a stable name, used in tracing and in
// RuleSelector-based test isolation.
type Rule struct {
	Id    RuleId
	Apply RuleFunc
}

func (r Rule) String() string { return r.Id.String() }

// Strategy governs how a Batch iterates its rules (spec.md §4.2).
type Strategy interface {
	// run applies rules to n once per pass, stopping per the strategy's own
	// policy, and returns the final tree.
	run(ctx *sql.Context, a *Analyzer, batchName string, rules []Rule, n sql.Node) (sql.Node, error)
}

// applyRule runs one rule application inside its own child tracing span,
// logging a debug-level line naming the rule and whether it changed the
// tree, mirroring the teacher's sql/analyzer rule-tracing idiom.
func applyRule(ctx *sql.Context, a *Analyzer, rule Rule, n sql.Node) (sql.Node, transform.TreeIdentity, error) {
	ctx, finish := ctx.Span("rule:" + rule.String())
	defer finish()
	result, same, err := rule.Apply(ctx, a, n)
	if err != nil {
		return nil, same, err
	}
	ctx.Log.Debugf("rule %s: changed=%v", rule, same == transform.NewTree)
	return result, same, nil
}

// Once applies every rule in the batch exactly once, in order.
type Once struct{}

func (Once) run(ctx *sql.Context, a *Analyzer, batchName string, rules []Rule, n sql.Node) (sql.Node, error) {
	result := n
	for _, rule := range rules {
		if !a.ruleEnabled(rule.Id) {
			continue
		}
		var err error
		result, _, err = applyRule(ctx, a, rule, result)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// FixedPoint iterates the batch's rules, in order, until a full pass
// changes nothing or Limit passes have elapsed. Limit == 0 means
// unlimited. Non-convergence is not itself an error (spec.md §4.2): the
// caller continues to the next batch with the best-effort tree, and
// residual non-resolution is caught by the post-analysis check batch.
type FixedPoint struct {
	Limit int
}

func (f FixedPoint) run(ctx *sql.Context, a *Analyzer, batchName string, rules []Rule, n sql.Node) (sql.Node, error) {
	cur := n
	for pass := 1; f.Limit == 0 || pass <= f.Limit; pass++ {
		next := cur
		changed := false
		for _, rule := range rules {
			if !a.ruleEnabled(rule.Id) {
				continue
			}
			result, same, err := applyRule(ctx, a, rule, next)
			if err != nil {
				return nil, err
			}
			if same == transform.NewTree {
				changed = true
			}
			next = result
		}
		prev := cur
		cur = next
		if !changed || reflect.DeepEqual(prev, cur) {
			return cur, nil
		}
	}
	ctx.Log.Warnf("batch %q did not converge within %d passes", batchName, f.Limit)
	return cur, nil
}

// Batch is a named list of rules plus the strategy governing how many times
// they run (spec.md §4.2).
type Batch struct {
	Desc     string
	Strategy Strategy
	Rules    []Rule
}

func (b *Batch) eval(ctx *sql.Context, a *Analyzer, n sql.Node) (sql.Node, error) {
	ctx, finish := ctx.Span("batch:" + b.Desc)
	defer finish()
	ctx.Log.Infof("batch %q: starting", b.Desc)
	out, err := b.Strategy.run(ctx, a, b.Desc, b.Rules, n)
	if err != nil {
		return nil, err
	}
	ctx.Log.Infof("batch %q: finished", b.Desc)
	return out, nil
}
