package expression

import (
	"fmt"

	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/types"
)

// Aggregation is implemented by every declarative three-phase aggregate
// function: NewState produces the per-group accumulator, Update folds one
// row into it, Merge combines two partial accumulators (needed once
// execution distributes aggregation across partitions — out of this core's
// scope, but the interface is declared here because the type/resolution
// layer must recognize the shape), and Final extracts the result.
//
// Grounded on the teacher's sql.Aggregation / AggregationBuffer pair
// (sql/expression/function/aggregation/{count,sum}.go): NewBuffer/Update/
// Merge/Eval there correspond to NewState/Update/Merge/Final here.
type Aggregation interface {
	sql.Expression
	sql.Nameable
	// NewState returns a fresh accumulator for one group.
	NewState() AggregationState
}

// AggregationState is the per-group accumulator an Aggregation maintains.
// Evaluation (Update/Merge/Final against real rows) is outside this core's
// scope — the analyzer only needs to know an expression is an Aggregation
// to resolve GROUP BY/HAVING/ORDER BY around it; the shape is declared so
// physical planning downstream has something to implement against.
type AggregationState interface {
	Update(row sql.Row) error
	Merge(other AggregationState) error
	Final() (interface{}, error)
}

// aggregationFunction is embedded by every concrete aggregate to supply the
// Nameable/Resolved/IsNullable/Foldable boilerplate; aggregate functions are
// never foldable (spec.md §3: foldable excludes aggregate nodes).
type aggregationFunction struct {
	UnaryExpression
	name string
}

func (a aggregationFunction) Name() string { return a.name }

func (a aggregationFunction) Foldable() bool { return false }

// Count implements COUNT(expr) and, specially, COUNT(*) and COUNT(1).
type Count struct {
	aggregationFunction
}

var _ Aggregation = (*Count)(nil)

// NewCount builds a COUNT aggregate over expr. ResolveFunctions rewrites
// COUNT(*) to Count(1) per spec.md §4.4, passing a literal 1 as expr, so
// this node is never built with a Star child.
func NewCount(expr sql.Expression) *Count {
	return &Count{aggregationFunction{UnaryExpression{Child: expr}, "count"}}
}

func (c *Count) Type() types.DataType { return types.Int64 }

func (c *Count) IsNullable() bool { return false }

func (c *Count) NewState() AggregationState { return &countState{} }

func (c *Count) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(c, len(children), 1)
	}
	return NewCount(children[0]), nil
}

func (c *Count) String() string { return fmt.Sprintf("COUNT(%s)", c.Child) }

type countState struct{ n int64 }

func (s *countState) Update(row sql.Row) error { s.n++; return nil }
func (s *countState) Merge(other AggregationState) error {
	s.n += other.(*countState).n
	return nil
}
func (s *countState) Final() (interface{}, error) { return s.n, nil }

// Sum implements SUM(expr).
type Sum struct {
	aggregationFunction
}

var _ Aggregation = (*Sum)(nil)

func NewSum(expr sql.Expression) *Sum {
	return &Sum{aggregationFunction{UnaryExpression{Child: expr}, "sum"}}
}

func (s *Sum) Type() types.DataType { return types.Float64 }

func (s *Sum) IsNullable() bool { return true }

func (s *Sum) NewState() AggregationState { return &sumState{isNil: true} }

func (s *Sum) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(s, len(children), 1)
	}
	return NewSum(children[0]), nil
}

func (s *Sum) String() string { return fmt.Sprintf("SUM(%s)", s.Child) }

type sumState struct {
	isNil bool
	sum   float64
}

func (s *sumState) Update(row sql.Row) error { return nil }
func (s *sumState) Merge(other AggregationState) error {
	o := other.(*sumState)
	if o.isNil {
		return nil
	}
	s.isNil = false
	s.sum += o.sum
	return nil
}
func (s *sumState) Final() (interface{}, error) {
	if s.isNil {
		return nil, nil
	}
	return s.sum, nil
}

// Avg implements AVG(expr).
type Avg struct {
	aggregationFunction
}

var _ Aggregation = (*Avg)(nil)

func NewAvg(expr sql.Expression) *Avg {
	return &Avg{aggregationFunction{UnaryExpression{Child: expr}, "avg"}}
}

func (a *Avg) Type() types.DataType { return types.Float64 }

func (a *Avg) IsNullable() bool { return true }

func (a *Avg) NewState() AggregationState { return &avgState{} }

func (a *Avg) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(a, len(children), 1)
	}
	return NewAvg(children[0]), nil
}

func (a *Avg) String() string { return fmt.Sprintf("AVG(%s)", a.Child) }

type avgState struct {
	sum   float64
	count int64
}

func (s *avgState) Update(row sql.Row) error { return nil }
func (s *avgState) Merge(other AggregationState) error {
	o := other.(*avgState)
	s.sum += o.sum
	s.count += o.count
	return nil
}
func (s *avgState) Final() (interface{}, error) {
	if s.count == 0 {
		return nil, nil
	}
	return s.sum / float64(s.count), nil
}

// Min and Max implement MIN(expr)/MAX(expr); they share an implementation
// parameterized by a "prefer" comparison, grounded on the teacher's
// unary_aggs.go pattern of a shared extremum buffer for both.
type extremum struct {
	aggregationFunction
	max bool
}

var _ Aggregation = (*extremum)(nil)

func NewMin(expr sql.Expression) Aggregation {
	return &extremum{aggregationFunction{UnaryExpression{Child: expr}, "min"}, false}
}

func NewMax(expr sql.Expression) Aggregation {
	return &extremum{aggregationFunction{UnaryExpression{Child: expr}, "max"}, true}
}

func (e *extremum) Type() types.DataType { return e.Child.Type() }

func (e *extremum) IsNullable() bool { return true }

func (e *extremum) NewState() AggregationState { return &extremumState{max: e.max} }

func (e *extremum) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenCount.New(e, len(children), 1)
	}
	if e.max {
		return NewMax(children[0]), nil
	}
	return NewMin(children[0]), nil
}

func (e *extremum) String() string {
	if e.max {
		return fmt.Sprintf("MAX(%s)", e.Child)
	}
	return fmt.Sprintf("MIN(%s)", e.Child)
}

type extremumState struct {
	max     bool
	hasSeen bool
	value   interface{}
}

func (s *extremumState) Update(row sql.Row) error { return nil }
func (s *extremumState) Merge(other AggregationState) error {
	o := other.(*extremumState)
	if !o.hasSeen {
		return nil
	}
	s.hasSeen = true
	s.value = o.value
	return nil
}
func (s *extremumState) Final() (interface{}, error) { return s.value, nil }
