package expression

import (
	"fmt"
	"strings"

	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/types"
)

// UnresolvedFunction is a placeholder for a function call the parser
// produced but the analyzer has not yet bound to a registry entry.
//
// Grounded on the teacher's expression.UnresolvedFunction
// (sql/expression/unresolved.go), trimmed of the window-function fields
// this core's Non-goals exclude (SPEC_FULL.md §5).
type UnresolvedFunction struct {
	NaryExpression
	name     string
	distinct bool
}

var _ sql.Expression = (*UnresolvedFunction)(nil)

// NewUnresolvedFunction creates a placeholder function call.
func NewUnresolvedFunction(name string, distinct bool, args ...sql.Expression) *UnresolvedFunction {
	return &UnresolvedFunction{NaryExpression: NaryExpression{ChildExprs: args}, name: name, distinct: distinct}
}

func (f *UnresolvedFunction) Name() string { return f.name }

// Distinct reports whether the call carried a DISTINCT modifier, e.g.
// COUNT(DISTINCT x).
func (f *UnresolvedFunction) Distinct() bool { return f.distinct }

func (f *UnresolvedFunction) Resolved() bool { return false }

func (f *UnresolvedFunction) Type() types.DataType {
	panic("UnresolvedFunction is a placeholder node, but Type was called")
}

func (f *UnresolvedFunction) IsNullable() bool {
	panic("UnresolvedFunction is a placeholder node, but IsNullable was called")
}

func (f *UnresolvedFunction) Foldable() bool { return false }

func (f *UnresolvedFunction) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	return NewUnresolvedFunction(f.name, f.distinct, children...), nil
}

func (f *UnresolvedFunction) String() string {
	args := make([]string, len(f.ChildExprs))
	for i, a := range f.ChildExprs {
		args[i] = a.String()
	}
	distinct := ""
	if f.distinct {
		distinct = "DISTINCT "
	}
	return fmt.Sprintf("%s(%s%s)", f.name, distinct, strings.Join(args, ", "))
}
