package parser

import (
	"github.com/joeandaverde/databas/tsql/ast"
	"github.com/joeandaverde/databas/tsql/lexer"
)

// parseInsert parses the remainder of an INSERT statement after its leading
// keyword:
//
//	INSERT INTO id ( identifier-list ) VALUES (expr-list) [, (expr-list)]* ;
func (p *Parser) parseInsert() (ast.Statement, error) {
	if err := p.lexer.ExpectToken(lexer.TokenInto); err != nil {
		return nil, err
	}

	table, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	if err := p.lexer.ExpectToken(lexer.TokenOpenParen); err != nil {
		return nil, err
	}
	columns, err := p.parseIdentifierList()
	if err != nil {
		return nil, err
	}
	if err := p.lexer.ExpectToken(lexer.TokenCloseParen); err != nil {
		return nil, err
	}

	if err := p.lexer.ExpectToken(lexer.TokenValues); err != nil {
		return nil, err
	}

	var values [][]ast.Expression
	for {
		if err := p.lexer.ExpectToken(lexer.TokenOpenParen); err != nil {
			return nil, err
		}
		row, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		if err := p.lexer.ExpectToken(lexer.TokenCloseParen); err != nil {
			return nil, err
		}
		values = append(values, row)

		if ok, err := p.consumeIf(lexer.TokenComma); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}

	if err := p.expectClosingSemicolon(); err != nil {
		return nil, err
	}

	return &ast.InsertStatement{Table: table, Columns: columns, Values: values}, nil
}
