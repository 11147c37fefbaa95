package catalog

import (
	"fmt"

	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/sql"
)

// funcInfo is the concrete FunctionInfo every builtin registers as.
type funcInfo struct {
	name        string
	isAggregate bool
	build       func(args []sql.Expression) (sql.Expression, error)
}

func (f *funcInfo) Name() string      { return f.name }
func (f *funcInfo) IsAggregate() bool { return f.isAggregate }
func (f *funcInfo) Build(args []sql.Expression) (sql.Expression, error) {
	return f.build(args)
}

func aggregateFunc(name string, build func(args []sql.Expression) (sql.Expression, error)) *funcInfo {
	return &funcInfo{name: name, isAggregate: true, build: build}
}

func unaryArg(name string, args []sql.Expression) (sql.Expression, error) {
	if len(args) != 1 {
		return nil, sql.ErrAnalysis.New(fmt.Sprintf("%s takes exactly one argument, got %d", name, len(args)))
	}
	return args[0], nil
}

// RegisterBuiltins registers the aggregate functions spec.md §3 names as
// "declarative three-phase" aggregates: count, sum, avg, min, max.
func RegisterBuiltins(c *MemoryCatalog) {
	c.AddFunction(aggregateFunc("count", func(args []sql.Expression) (sql.Expression, error) {
		if len(args) != 1 {
			return nil, sql.ErrAnalysis.New(fmt.Sprintf("count takes exactly one argument, got %d", len(args)))
		}
		return expression.NewCount(args[0]), nil
	}))
	c.AddFunction(aggregateFunc("sum", func(args []sql.Expression) (sql.Expression, error) {
		arg, err := unaryArg("sum", args)
		if err != nil {
			return nil, err
		}
		return expression.NewSum(arg), nil
	}))
	c.AddFunction(aggregateFunc("avg", func(args []sql.Expression) (sql.Expression, error) {
		arg, err := unaryArg("avg", args)
		if err != nil {
			return nil, err
		}
		return expression.NewAvg(arg), nil
	}))
	c.AddFunction(aggregateFunc("min", func(args []sql.Expression) (sql.Expression, error) {
		arg, err := unaryArg("min", args)
		if err != nil {
			return nil, err
		}
		return expression.NewMin(arg), nil
	}))
	c.AddFunction(aggregateFunc("max", func(args []sql.Expression) (sql.Expression, error) {
		arg, err := unaryArg("max", args)
		if err != nil {
			return nil, err
		}
		return expression.NewMax(arg), nil
	}))
}
