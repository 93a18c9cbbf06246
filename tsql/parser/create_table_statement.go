package parser

import (
	"github.com/joeandaverde/databas/tsql/ast"
	"github.com/joeandaverde/databas/tsql/lexer"
)

// parseCreateTable parses the remainder of a CREATE TABLE statement after
// its leading keyword:
//
//	CREATE TABLE id ( column-def [, column-def]* ) ;
//	column-def = id type constraint*
func (p *Parser) parseCreateTable() (ast.Statement, error) {
	if err := p.lexer.ExpectToken(lexer.TokenTable); err != nil {
		return nil, err
	}

	tableName, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	if err := p.lexer.ExpectToken(lexer.TokenOpenParen); err != nil {
		return nil, err
	}

	var columns []ast.ColumnDefinition
	for {
		col, err := p.parseColumnDefinition()
		if err != nil {
			return nil, err
		}
		columns = append(columns, col)

		if ok, err := p.consumeIf(lexer.TokenComma); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}

	if err := p.lexer.ExpectToken(lexer.TokenCloseParen); err != nil {
		return nil, err
	}
	if err := p.expectClosingSemicolon(); err != nil {
		return nil, err
	}

	return &ast.CreateTableStatement{TableName: tableName, Columns: columns}, nil
}

func (p *Parser) parseColumnDefinition() (ast.ColumnDefinition, error) {
	var def ast.ColumnDefinition

	name, err := p.parseIdentifier()
	if err != nil {
		return def, err
	}
	def.Name = name

	typeTok, err := p.lexer.Next()
	if err != nil {
		return def, err
	}
	switch typeTok.Kind {
	case lexer.TokenIntType:
		def.Type = ast.ColumnTypeInt
	case lexer.TokenFloatType:
		def.Type = ast.ColumnTypeFloat
	case lexer.TokenTextType:
		def.Type = ast.ColumnTypeText
	case lexer.TokenEOF:
		return def, &lexer.SQLError{Kind: lexer.ErrUnexpectedEnd, Pos: typeTok.Position}
	default:
		return def, &lexer.SQLError{Kind: lexer.ErrInvalidDataType, Pos: typeTok.Position, Got: typeTok}
	}

	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return def, err
		}
		switch tok.Kind {
		case lexer.TokenPrimary:
			p.lexer.Next()
			if err := p.lexer.ExpectToken(lexer.TokenKey); err != nil {
				return def, err
			}
			if def.PrimaryKey {
				return def, &lexer.SQLError{
					Kind: lexer.ErrDuplicateConstraint, Pos: tok.Position,
					Column: def.Name, Constraint: "PRIMARY KEY",
				}
			}
			def.PrimaryKey = true
		case lexer.TokenNullable:
			p.lexer.Next()
			if def.Nullable {
				return def, &lexer.SQLError{
					Kind: lexer.ErrDuplicateConstraint, Pos: tok.Position,
					Column: def.Name, Constraint: "NULLABLE",
				}
			}
			def.Nullable = true
		default:
			return def, nil
		}
	}
}
