package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joeandaverde/databas/tsql/ast"
	"github.com/joeandaverde/databas/tsql/lexer"
)

func parseExpr(t *testing.T, source string) ast.Expression {
	t.Helper()
	expr, err := New(source).Expr()
	require.NoError(t, err)
	return expr
}

func TestMultiplicationBindsTighterThanAddition(t *testing.T) {
	r := require.New(t)

	expr := parseExpr(t, "1 + 2 * 3")
	add, ok := expr.(*ast.BinaryOperation)
	r.True(ok)
	r.Equal("+", add.Operator)
	r.Equal(&ast.BasicLiteral{Value: "1", Kind: lexer.TokenInteger}, add.Left)

	mul, ok := add.Right.(*ast.BinaryOperation)
	r.True(ok)
	r.Equal("*", mul.Operator)

	expr = parseExpr(t, "1 * 2 + 3")
	add, ok = expr.(*ast.BinaryOperation)
	r.True(ok)
	r.Equal("+", add.Operator)
	_, ok = add.Left.(*ast.BinaryOperation)
	r.True(ok)
}

func TestArithmeticIsLeftAssociative(t *testing.T) {
	r := require.New(t)

	expr := parseExpr(t, "1 - 2 - 3")
	r.Equal("((1 - 2) - 3)", expr.(*ast.BinaryOperation).String())
}

func TestComparisonBindsLooserThanArithmetic(t *testing.T) {
	r := require.New(t)

	expr := parseExpr(t, "a + b < c AND d")
	and, ok := expr.(*ast.BinaryOperation)
	r.True(ok)
	r.Equal("AND", and.Operator)

	cmp, ok := and.Left.(*ast.BinaryOperation)
	r.True(ok)
	r.Equal("<", cmp.Operator)

	sum, ok := cmp.Left.(*ast.BinaryOperation)
	r.True(ok)
	r.Equal("+", sum.Operator)
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	r := require.New(t)

	expr := parseExpr(t, "(1 + 2) * 3")
	mul, ok := expr.(*ast.BinaryOperation)
	r.True(ok)
	r.Equal("*", mul.Operator)

	add, ok := mul.Left.(*ast.BinaryOperation)
	r.True(ok)
	r.Equal("+", add.Operator)
}

func TestUnaryMinus(t *testing.T) {
	r := require.New(t)

	expr := parseExpr(t, "-1 + 2")
	add, ok := expr.(*ast.BinaryOperation)
	r.True(ok)
	r.Equal("+", add.Operator)

	neg, ok := add.Left.(*ast.UnaryOperation)
	r.True(ok)
	r.Equal("-", neg.Operator)
	r.Equal(&ast.BasicLiteral{Value: "1", Kind: lexer.TokenInteger}, neg.Operand)
}

func TestNotBindsTighterThanAnd(t *testing.T) {
	r := require.New(t)

	expr := parseExpr(t, "NOT a AND b")
	and, ok := expr.(*ast.BinaryOperation)
	r.True(ok)
	r.Equal("AND", and.Operator)

	not, ok := and.Left.(*ast.UnaryOperation)
	r.True(ok)
	r.Equal("NOT", not.Operator)
}

func TestComparisonOperators(t *testing.T) {
	r := require.New(t)

	for _, op := range []string{"<", "<=", ">", ">=", "==", "!="} {
		expr := parseExpr(t, "a "+op+" b")
		bin, ok := expr.(*ast.BinaryOperation)
		r.True(ok)
		r.Equal(op, bin.Operator)
	}
}

func TestLiteralAtoms(t *testing.T) {
	r := require.New(t)

	cases := []struct {
		source string
		want   *ast.BasicLiteral
	}{
		{"'hi'", &ast.BasicLiteral{Value: "hi", Kind: lexer.TokenString}},
		{"42", &ast.BasicLiteral{Value: "42", Kind: lexer.TokenInteger}},
		{"4.5", &ast.BasicLiteral{Value: "4.5", Kind: lexer.TokenFloat}},
		{"true", &ast.BasicLiteral{Value: "true", Kind: lexer.TokenTrue}},
		{"FALSE", &ast.BasicLiteral{Value: "FALSE", Kind: lexer.TokenFalse}},
		{"null", &ast.BasicLiteral{Value: "null", Kind: lexer.TokenNull}},
	}
	for _, c := range cases {
		r.Equal(c.want, parseExpr(t, c.source))
	}
}

func TestBareEqualsIsNotAnOperator(t *testing.T) {
	_, err := New("a = b").Expr()
	requireSQLError(t, err, lexer.ErrInvalidOperator, 2)
}

func TestUnclosedParenthesis(t *testing.T) {
	// The inner expression fails, so the whole parenthesized atom is
	// reported as unclosed at the opening paren.
	_, err := New("(1 +").Expr()
	requireSQLError(t, err, lexer.ErrUnclosedParenthesis, 0)
}

func TestMissingCloseParen(t *testing.T) {
	r := require.New(t)

	_, err := New("(1 + 2;").Expr()
	sqlErr := requireSQLError(t, err, lexer.ErrUnexpectedTokenKind, 6)
	r.Equal(lexer.TokenCloseParen, sqlErr.Expected)
	r.Equal(lexer.TokenSemicolon, sqlErr.Got.Kind)
}

func TestAggregateFunctions(t *testing.T) {
	r := require.New(t)

	expr := parseExpr(t, "COUNT(*)")
	agg, ok := expr.(*ast.AggregateFunction)
	r.True(ok)
	r.Equal("COUNT", agg.Name)
	r.IsType(&ast.Wildcard{}, agg.Operand)

	expr = parseExpr(t, "SUM(price)")
	agg, ok = expr.(*ast.AggregateFunction)
	r.True(ok)
	r.Equal("SUM", agg.Name)
	r.Equal(&ast.Ident{Value: "price"}, agg.Operand)

	expr = parseExpr(t, "AVG(price / quantity)")
	agg, ok = expr.(*ast.AggregateFunction)
	r.True(ok)
	r.Equal("AVG", agg.Name)
	r.IsType(&ast.BinaryOperation{}, agg.Operand)
}
