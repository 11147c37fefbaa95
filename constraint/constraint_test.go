package constraint

import (
	"testing"

	"github.com/arcdb/sqlplan/expression"
	"github.com/arcdb/sqlplan/sql"
	"github.com/arcdb/sqlplan/types"
	"github.com/stretchr/testify/require"
)

func TestSameSubtypesOfAcceptsStringPlusInt(t *testing.T) {
	left := expression.NewLiteral("1", types.String)
	right := expression.NewLiteral(2, types.Int32)
	plus := expression.NewPlus(left, right)

	coerced, err := Eval(SameSubtypesOf(types.NumericType), plus, plus.Children())
	require.NoError(t, err)
	require.Len(t, coerced, 2)
	require.True(t, coerced[0].Type().Equal(types.Int32))
	require.True(t, coerced[1].Type().Equal(types.Int32))
}

func TestSameSubtypesOfRejectsStringPlusString(t *testing.T) {
	left := expression.NewLiteral("1", types.String)
	right := expression.NewLiteral("2", types.String)
	plus := expression.NewPlus(left, right)

	_, err := Eval(SameSubtypesOf(types.NumericType), plus, plus.Children())
	require.Error(t, err)
	require.True(t, sql.ErrTypeMismatch.Is(err))
}

func TestSameTypeCoercesToWidest(t *testing.T) {
	left := expression.NewLiteral(int32(1), types.Int32)
	right := expression.NewLiteral(int64(2), types.Int64)
	eq := expression.NewEquals(left, right)

	coerced, err := Eval(SameType(), eq, eq.Children())
	require.NoError(t, err)
	require.True(t, coerced[0].Type().Equal(types.Int64))
	require.True(t, coerced[1].Type().Equal(types.Int64))
}

func TestSameTypeAsIsIdempotent(t *testing.T) {
	lit := expression.NewLiteral(int32(1), types.Int32)
	once, err := Eval(SameTypeAs(types.Int64), nil, []sql.Expression{lit})
	require.NoError(t, err)

	twice, err := Eval(SameTypeAs(types.Int64), nil, once)
	require.NoError(t, err)
	require.Equal(t, once[0].String(), twice[0].String())
}

func TestOrElseFallsBackToSecondConstraint(t *testing.T) {
	lit := expression.NewLiteral("x", types.String)
	_, err := Eval(OrElse(SameSubtypesOf(types.NumericType), PassThrough()), nil, []sql.Expression{lit})
	require.NoError(t, err)
}
