package ast

import (
	"fmt"
	"strings"

	"github.com/joeandaverde/databas/tsql/lexer"
)

// Expression represents a SQL expression
type Expression interface {
	iExpression()
}

// BinaryOperation is an expression with two operands
type BinaryOperation struct {
	Left     Expression
	Right    Expression
	Operator string
}

// UnaryOperation is a prefix operator applied to one operand
type UnaryOperation struct {
	Operator string
	Operand  Expression
}

// Ident is a reference to something in the environment
type Ident struct {
	Value string
}

// Wildcard is the bare * in a select list or COUNT(*)
type Wildcard struct{}

// AggregateFunction is an application of a recognized aggregate name to one
// argument, e.g. COUNT(*) or SUM(price)
type AggregateFunction struct {
	Name    string
	Operand Expression
}

// BasicLiteral represents a string, number, boolean, or null value. Kind is
// one of TokenString, TokenInteger, TokenFloat, TokenTrue, TokenFalse, or
// TokenNull.
type BasicLiteral struct {
	Value string
	Kind  lexer.Kind
}

func (*BinaryOperation) iExpression()   {}
func (*UnaryOperation) iExpression()    {}
func (*Ident) iExpression()             {}
func (*Wildcard) iExpression()          {}
func (*AggregateFunction) iExpression() {}
func (*BasicLiteral) iExpression()      {}

func (o *BinaryOperation) String() string {
	return fmt.Sprintf("(%s %s %s)", o.Left, o.Operator, o.Right)
}

func (o *UnaryOperation) String() string {
	if strings.EqualFold(o.Operator, "NOT") {
		return fmt.Sprintf("NOT %s", o.Operand)
	}
	return fmt.Sprintf("%s%s", o.Operator, o.Operand)
}

func (i *Ident) String() string {
	return i.Value
}

func (*Wildcard) String() string {
	return "*"
}

func (a *AggregateFunction) String() string {
	return fmt.Sprintf("%s(%s)", a.Name, a.Operand)
}

func (l *BasicLiteral) String() string {
	if l.Kind == lexer.TokenString {
		return fmt.Sprintf("'%s'", l.Value)
	}
	return l.Value
}
