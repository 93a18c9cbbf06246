package parser

import (
	"github.com/joeandaverde/databas/tsql/ast"
	"github.com/joeandaverde/databas/tsql/lexer"
)

// parseSelect parses the remainder of a SELECT statement after its leading
// keyword:
//
//	SELECT expr-list [FROM id] [WHERE expr]
//	    [ORDER BY expr-list [ASC|DESC]] [LIMIT n] [OFFSET n] ;
func (p *Parser) parseSelect() (ast.Statement, error) {
	columns, err := p.parseExpressionList()
	if err != nil {
		if sqlErr, isSQL := err.(*lexer.SQLError); isSQL && sqlErr.Kind == lexer.ErrUnexpectedEnd {
			return nil, &lexer.SQLError{Kind: lexer.ErrExpectedExpression, Pos: sqlErr.Pos}
		}
		return nil, err
	}

	stmt := &ast.SelectStatement{Columns: columns}

	if ok, err := p.consumeIf(lexer.TokenFrom); err != nil {
		return nil, err
	} else if ok {
		table, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		stmt.Table = table
	}

	if ok, err := p.consumeIf(lexer.TokenWhere); err != nil {
		return nil, err
	} else if ok {
		where, err := p.exprBP(0)
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}

	orderBy, err := p.parseOrderBy()
	if err != nil {
		return nil, err
	}
	stmt.OrderBy = orderBy

	if ok, err := p.consumeIf(lexer.TokenLimit); err != nil {
		return nil, err
	} else if ok {
		limit, err := p.parseNonNegativeInteger()
		if err != nil {
			return nil, err
		}
		stmt.Limit = &limit
	}

	if ok, err := p.consumeIf(lexer.TokenOffset); err != nil {
		return nil, err
	} else if ok {
		offset, err := p.parseNonNegativeInteger()
		if err != nil {
			return nil, err
		}
		stmt.Offset = &offset
	}

	if err := p.lexer.ExpectToken(lexer.TokenSemicolon); err != nil {
		if sqlErr, isSQL := err.(*lexer.SQLError); isSQL && sqlErr.Kind == lexer.ErrUnexpectedEnd {
			return nil, &lexer.SQLError{Kind: lexer.ErrExpectedCommaOrSemicolon, Pos: sqlErr.Pos}
		}
		return nil, err
	}

	return stmt, nil
}

// parseOrderBy parses an optional ORDER BY clause. A single trailing ASC or
// DESC applies to the whole term list.
func (p *Parser) parseOrderBy() (*ast.OrderBy, error) {
	if ok, err := p.consumeIf(lexer.TokenOrder); err != nil || !ok {
		return nil, err
	}
	if err := p.lexer.ExpectToken(lexer.TokenBy); err != nil {
		return nil, err
	}

	terms, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}

	orderBy := &ast.OrderBy{Terms: terms}
	if ok, err := p.consumeIf(lexer.TokenAsc); err != nil {
		return nil, err
	} else if ok {
		orderBy.Order = ast.OrderAscending
		return orderBy, nil
	}
	if ok, err := p.consumeIf(lexer.TokenDesc); err != nil {
		return nil, err
	} else if ok {
		orderBy.Order = ast.OrderDescending
	}
	return orderBy, nil
}

// consumeIf consumes the next token if it has the given kind.
func (p *Parser) consumeIf(kind lexer.Kind) (bool, error) {
	tok, err := p.lexer.Peek()
	if err != nil {
		return false, err
	}
	if tok.Kind != kind {
		return false, nil
	}
	p.lexer.Next()
	return true, nil
}
