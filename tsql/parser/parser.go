// Package parser is a Pratt (precedence-climbing) parser over the lexer's
// token stream, producing typed statement trees for SELECT, INSERT, and
// CREATE TABLE. Every failure is a positioned lexer.SQLError.
package parser

import (
	"strconv"

	"github.com/joeandaverde/databas/tsql/ast"
	"github.com/joeandaverde/databas/tsql/lexer"
)

// Parser consumes the lexer and produces statements.
type Parser struct {
	lexer *lexer.Lexer
}

// New initializes a parser over a SQL source string.
func New(source string) *Parser {
	return &Parser{lexer: lexer.New(source)}
}

// Stmt parses one statement, dispatching on the leading keyword. At the end
// of input it fails with ErrUnexpectedEnd; see Next for iteration that
// treats that as a clean end of stream.
func (p *Parser) Stmt() (ast.Statement, error) {
	tok, err := p.lexer.Next()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case lexer.TokenSelect:
		return p.parseSelect()
	case lexer.TokenInsert:
		return p.parseInsert()
	case lexer.TokenCreate:
		return p.parseCreateTable()
	case lexer.TokenEOF:
		return nil, &lexer.SQLError{Kind: lexer.ErrUnexpectedEnd, Pos: tok.Position}
	default:
		return nil, &lexer.SQLError{Kind: lexer.ErrOther, Pos: tok.Position, Got: tok}
	}
}

// Next returns the next statement in the source. It returns ok=false once
// the input is exhausted; any other failure is returned as err and ends
// iteration.
func (p *Parser) Next() (ast.Statement, bool, error) {
	stmt, err := p.Stmt()
	if sqlErr, isSQL := err.(*lexer.SQLError); isSQL && sqlErr.Kind == lexer.ErrUnexpectedEnd {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return stmt, true, nil
}

// ParseStatement parses a string of sql and produces a single statement or
// a positioned parse failure.
func ParseStatement(sql string) (ast.Statement, error) {
	return New(sql).Stmt()
}

func (p *Parser) parseIdentifier() (string, error) {
	tok, err := p.lexer.Next()
	if err != nil {
		return "", err
	}
	switch tok.Kind {
	case lexer.TokenIdentifier:
		return tok.Text, nil
	case lexer.TokenEOF:
		return "", &lexer.SQLError{Kind: lexer.ErrUnexpectedEnd, Pos: tok.Position}
	default:
		return "", &lexer.SQLError{Kind: lexer.ErrExpectedIdentifier, Pos: tok.Position, Got: tok}
	}
}

func (p *Parser) parseIdentifierList() ([]string, error) {
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	list := []string{id}
	for {
		tok, err := p.lexer.Peek()
		if err != nil || tok.Kind != lexer.TokenComma {
			return list, err
		}
		p.lexer.Next()
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		list = append(list, id)
	}
}

func (p *Parser) parseExpressionList() ([]ast.Expression, error) {
	expr, err := p.exprBP(0)
	if err != nil {
		return nil, err
	}
	list := []ast.Expression{expr}
	for {
		tok, err := p.lexer.Peek()
		if err != nil || tok.Kind != lexer.TokenComma {
			return list, err
		}
		p.lexer.Next()
		expr, err := p.exprBP(0)
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
	}
}

// parseNonNegativeInteger parses a LIMIT/OFFSET count: a non-negative
// 32-bit integer literal. A unary minus in front of the literal is called
// out specifically.
func (p *Parser) parseNonNegativeInteger() (uint32, error) {
	tok, err := p.lexer.Next()
	if err != nil {
		return 0, err
	}
	switch tok.Kind {
	case lexer.TokenInteger:
		// The lexer only classifies a literal as TokenInteger if it parses
		// as a signed 32-bit integer, and it never includes a sign.
		n, _ := strconv.ParseInt(tok.Text, 10, 32)
		return uint32(n), nil
	case lexer.TokenMinus:
		next, err := p.lexer.Next()
		if err != nil {
			return 0, err
		}
		if next.Kind == lexer.TokenInteger {
			n, _ := strconv.ParseInt(next.Text, 10, 32)
			return 0, &lexer.SQLError{Kind: lexer.ErrExpectedNonNegativeInteger, Pos: tok.Position, Num: int32(-n)}
		}
		return 0, &lexer.SQLError{Kind: lexer.ErrOther, Pos: tok.Position, Got: tok}
	case lexer.TokenEOF:
		return 0, &lexer.SQLError{Kind: lexer.ErrUnexpectedEnd, Pos: tok.Position}
	default:
		return 0, &lexer.SQLError{Kind: lexer.ErrExpectedInteger, Pos: tok.Position, Got: tok}
	}
}

// expectClosingSemicolon consumes the statement's terminating semicolon,
// reporting an unterminated statement if the input ends first.
func (p *Parser) expectClosingSemicolon() error {
	err := p.lexer.ExpectToken(lexer.TokenSemicolon)
	if sqlErr, isSQL := err.(*lexer.SQLError); isSQL && sqlErr.Kind == lexer.ErrUnexpectedEnd {
		return &lexer.SQLError{Kind: lexer.ErrUnterminatedStatement, Pos: sqlErr.Pos}
	}
	return err
}
