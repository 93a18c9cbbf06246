package parser

import (
	"github.com/joeandaverde/databas/tsql/ast"
	"github.com/joeandaverde/databas/tsql/lexer"
)

// prefixBindingPower returns the right binding power of a prefix operator.
func prefixBindingPower(k lexer.Kind) (uint8, bool) {
	switch k {
	case lexer.TokenMinus, lexer.TokenNot:
		return 7, true
	default:
		return 0, false
	}
}

// infixBindingPower returns the (left, right) binding powers of an infix
// operator. Left associativity falls out of right = left + 1.
func infixBindingPower(k lexer.Kind) (uint8, uint8, bool) {
	switch k {
	case lexer.TokenAnd, lexer.TokenOr:
		return 1, 2, true
	case lexer.TokenDoubleEquals, lexer.TokenNotEq,
		lexer.TokenLt, lexer.TokenGt, lexer.TokenLte, lexer.TokenGte:
		return 3, 4, true
	case lexer.TokenPlus, lexer.TokenMinus:
		return 5, 6, true
	case lexer.TokenAsterisk, lexer.TokenSlash:
		return 6, 7, true
	default:
		return 0, 0, false
	}
}

// haltsExpression reports whether k ends the infix loop: list and grouping
// punctuation, statement terminators, and SQL clause keywords.
func haltsExpression(k lexer.Kind) bool {
	switch k {
	case lexer.TokenComma, lexer.TokenCloseParen, lexer.TokenSemicolon, lexer.TokenEOF:
		return true
	default:
		return lexer.IsClauseKeyword(k)
	}
}

// Expr parses a complete expression.
func (p *Parser) Expr() (ast.Expression, error) {
	return p.exprBP(0)
}

// exprBP is the precedence-climbing core: parse an atom (or prefix
// application), then fold in infix operators while their left binding
// power is at least minBP.
func (p *Parser) exprBP(minBP uint8) (ast.Expression, error) {
	tok, err := p.lexer.Next()
	if err != nil {
		return nil, err
	}

	var lhs ast.Expression
	switch {
	case tok.Kind == lexer.TokenString || tok.Kind == lexer.TokenInteger ||
		tok.Kind == lexer.TokenFloat || tok.Kind == lexer.TokenTrue ||
		tok.Kind == lexer.TokenFalse || tok.Kind == lexer.TokenNull:
		lhs = &ast.BasicLiteral{Value: tok.Text, Kind: tok.Kind}

	case tok.Kind == lexer.TokenIdentifier:
		lhs = &ast.Ident{Value: tok.Text}

	case tok.Kind == lexer.TokenAsterisk:
		lhs = &ast.Wildcard{}

	case lexer.IsAggregateName(tok.Kind):
		lhs, err = p.parseAggregate(tok)
		if err != nil {
			return nil, err
		}

	case tok.Kind == lexer.TokenOpenParen:
		inner, innerErr := p.exprBP(0)
		if innerErr != nil {
			return nil, &lexer.SQLError{Kind: lexer.ErrUnclosedParenthesis, Pos: tok.Position}
		}
		if err := p.lexer.ExpectToken(lexer.TokenCloseParen); err != nil {
			return nil, err
		}
		lhs = inner

	case tok.Kind == lexer.TokenMinus || tok.Kind == lexer.TokenNot:
		rbp, _ := prefixBindingPower(tok.Kind)
		operand, err := p.exprBP(rbp)
		if err != nil {
			return nil, err
		}
		lhs = &ast.UnaryOperation{Operator: tok.Kind.String(), Operand: operand}

	case tok.Kind == lexer.TokenEOF:
		return nil, &lexer.SQLError{Kind: lexer.ErrUnexpectedEnd, Pos: tok.Position}

	default:
		return nil, &lexer.SQLError{Kind: lexer.ErrOther, Pos: tok.Position, Got: tok}
	}

	for {
		op, err := p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		if haltsExpression(op.Kind) {
			return lhs, nil
		}

		lbp, rbp, isOp := infixBindingPower(op.Kind)
		if !isOp {
			return nil, &lexer.SQLError{Kind: lexer.ErrInvalidOperator, Pos: op.Position, Got: op}
		}
		if lbp < minBP {
			return lhs, nil
		}

		p.lexer.Next()
		rhs, err := p.exprBP(rbp)
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryOperation{Left: lhs, Right: rhs, Operator: op.Kind.String()}
	}
}

// parseAggregate parses the parenthesized argument of an aggregate keyword
// that has already been consumed, e.g. the "(price)" of "SUM(price)".
func (p *Parser) parseAggregate(name lexer.Token) (ast.Expression, error) {
	if err := p.lexer.ExpectToken(lexer.TokenOpenParen); err != nil {
		return nil, err
	}
	operand, err := p.exprBP(0)
	if err != nil {
		return nil, err
	}
	if err := p.lexer.ExpectToken(lexer.TokenCloseParen); err != nil {
		return nil, err
	}
	return &ast.AggregateFunction{Name: name.Kind.String(), Operand: operand}, nil
}
