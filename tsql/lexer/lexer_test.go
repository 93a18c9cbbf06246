package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func expectToken(t *testing.T, l *Lexer, kind Kind, position int) {
	t.Helper()
	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, kind, tok.Kind)
	require.Equal(t, position, tok.Position)
}

func TestComparisonSymbols(t *testing.T) {
	l := New(" <  <=   >=  >")
	expectToken(t, l, TokenLt, 1)
	expectToken(t, l, TokenLte, 4)
	expectToken(t, l, TokenGte, 9)
	expectToken(t, l, TokenGt, 13)
}

func TestEqualitySymbols(t *testing.T) {
	l := New("== != =")
	expectToken(t, l, TokenDoubleEquals, 0)
	expectToken(t, l, TokenNotEq, 3)
	expectToken(t, l, TokenEquals, 6)
}

func TestBareExclamationMark(t *testing.T) {
	r := require.New(t)

	l := New("a ! b")
	expectToken(t, l, TokenIdentifier, 0)

	_, err := l.Next()
	var sqlErr *SQLError
	r.ErrorAs(err, &sqlErr)
	r.Equal(ErrInvalidCharacter, sqlErr.Kind)
	r.Equal('!', sqlErr.Char)
	r.Equal(2, sqlErr.Pos)
}

func TestSkipWhitespace(t *testing.T) {
	l := New("   (")
	expectToken(t, l, TokenOpenParen, 3)
	expectToken(t, l, TokenEOF, 4)
}

func TestLexNumber(t *testing.T) {
	r := require.New(t)

	l := New("1234")
	tok, err := l.Next()
	r.NoError(err)
	r.Equal(TokenInteger, tok.Kind)
	r.Equal("1234", tok.Text)
	r.Equal(0, tok.Position)
}

func TestLexFloatingPointNumber(t *testing.T) {
	r := require.New(t)

	l := New("12.345")
	tok, err := l.Next()
	r.NoError(err)
	r.Equal(TokenFloat, tok.Kind)
	r.Equal("12.345", tok.Text)
}

func TestLexIntegerOverflowBecomesFloat(t *testing.T) {
	r := require.New(t)

	// Doesn't fit a signed 32-bit integer, so it lexes as a float.
	l := New("99999999999")
	tok, err := l.Next()
	r.NoError(err)
	r.Equal(TokenFloat, tok.Kind)
}

func TestLexInvalidNumber(t *testing.T) {
	r := require.New(t)

	l := New("1.2.3")
	_, err := l.Next()
	var sqlErr *SQLError
	r.ErrorAs(err, &sqlErr)
	r.Equal(ErrInvalidNumber, sqlErr.Kind)
	r.Equal(0, sqlErr.Pos)
}

func TestDoubleQuotedString(t *testing.T) {
	r := require.New(t)

	l := New(`"hello world"`)
	tok, err := l.Next()
	r.NoError(err)
	r.Equal(TokenString, tok.Kind)
	r.Equal("hello world", tok.Text)
	r.Equal(0, tok.Position)
}

func TestSingleQuotedString(t *testing.T) {
	r := require.New(t)

	l := New(`'hello world'`)
	tok, err := l.Next()
	r.NoError(err)
	r.Equal(TokenString, tok.Kind)
	r.Equal("hello world", tok.Text)
}

func TestUnterminatedString(t *testing.T) {
	r := require.New(t)

	l := New(`"hello world`)
	_, err := l.Next()
	var sqlErr *SQLError
	r.ErrorAs(err, &sqlErr)
	r.Equal(ErrUnterminatedString, sqlErr.Kind)
	r.Equal(0, sqlErr.Pos)
}

func TestKeywordsCaseInsensitive(t *testing.T) {
	l := New("sEleCT * FrOm users whERe user_id < 100 aND NoT is_admin;")
	expectToken(t, l, TokenSelect, 0)
	expectToken(t, l, TokenAsterisk, 7)
	expectToken(t, l, TokenFrom, 9)
	expectToken(t, l, TokenIdentifier, 14)
	expectToken(t, l, TokenWhere, 20)
	expectToken(t, l, TokenIdentifier, 26)
	expectToken(t, l, TokenLt, 34)
	expectToken(t, l, TokenInteger, 36)
	expectToken(t, l, TokenAnd, 40)
	expectToken(t, l, TokenNot, 44)
	expectToken(t, l, TokenIdentifier, 48)
	expectToken(t, l, TokenSemicolon, 56)
}

func TestInsertKeywords(t *testing.T) {
	l := New("INSERT INTO some_table VALUES (a, b, c);")
	expectToken(t, l, TokenInsert, 0)
	expectToken(t, l, TokenInto, 7)
	expectToken(t, l, TokenIdentifier, 12)
	expectToken(t, l, TokenValues, 23)
}

func TestAggregateKeywords(t *testing.T) {
	r := require.New(t)

	l := New("COUNT SUM AVG STDDEV MIN MAX")
	for _, want := range []Kind{TokenCount, TokenSum, TokenAvg, TokenStddev, TokenMin, TokenMax} {
		tok, err := l.Next()
		r.NoError(err)
		r.Equal(want, tok.Kind)
		r.True(IsAggregateName(tok.Kind))
	}
}

func TestExpressionSymbols(t *testing.T) {
	l := New("12 + 23 * (36 / 8)")
	expectToken(t, l, TokenInteger, 0)
	expectToken(t, l, TokenPlus, 3)
	expectToken(t, l, TokenInteger, 5)
	expectToken(t, l, TokenAsterisk, 8)
	expectToken(t, l, TokenOpenParen, 10)
	expectToken(t, l, TokenInteger, 11)
	expectToken(t, l, TokenSlash, 14)
	expectToken(t, l, TokenInteger, 16)
	expectToken(t, l, TokenCloseParen, 17)
}

func TestLineComment(t *testing.T) {
	l := New("3 -- 4 5")
	expectToken(t, l, TokenInteger, 0)
	expectToken(t, l, TokenEOF, 8)

	l = New("3 -- 4 5\n6")
	expectToken(t, l, TokenInteger, 0)
	expectToken(t, l, TokenInteger, 9)
}

func TestBlockComment(t *testing.T) {
	l := New("3 /* 4 5 */ 6")
	expectToken(t, l, TokenInteger, 0)
	expectToken(t, l, TokenInteger, 12)
}

func TestUnterminatedBlockCommentConsumesToEOF(t *testing.T) {
	l := New("3 /* 4 5")
	expectToken(t, l, TokenInteger, 0)
	expectToken(t, l, TokenEOF, 8)
}

func TestMultilineLineComment(t *testing.T) {
	l := New("-- hello world\n-- another comment\n123 * 456")
	expectToken(t, l, TokenInteger, 34)
	expectToken(t, l, TokenAsterisk, 38)
	expectToken(t, l, TokenInteger, 40)
}

func TestNonASCIIIdentifier(t *testing.T) {
	r := require.New(t)

	l := New("åäö")
	tok, err := l.Next()
	r.NoError(err)
	r.Equal(TokenIdentifier, tok.Kind)
	r.Equal("åäö", tok.Text)
	r.Equal(0, tok.Position)
}

func TestIdentifierDoesNotContinueWithDigits(t *testing.T) {
	r := require.New(t)

	l := New("abc123")
	tok, err := l.Next()
	r.NoError(err)
	r.Equal(TokenIdentifier, tok.Kind)
	r.Equal("abc", tok.Text)

	tok, err = l.Next()
	r.NoError(err)
	r.Equal(TokenInteger, tok.Kind)
	r.Equal("123", tok.Text)
}

func TestPeekDoesNotConsume(t *testing.T) {
	r := require.New(t)

	l := New("SELECT 1")
	peeked, err := l.Peek()
	r.NoError(err)
	r.Equal(TokenSelect, peeked.Kind)

	tok, err := l.Next()
	r.NoError(err)
	r.Equal(peeked, tok)

	tok, err = l.Next()
	r.NoError(err)
	r.Equal(TokenInteger, tok.Kind)
}

func TestInvalidCharacter(t *testing.T) {
	r := require.New(t)

	l := New("?")
	_, err := l.Next()
	var sqlErr *SQLError
	r.ErrorAs(err, &sqlErr)
	r.Equal(ErrInvalidCharacter, sqlErr.Kind)
	r.Equal('?', sqlErr.Char)
}

func TestExpectToken(t *testing.T) {
	r := require.New(t)

	l := New("( )")
	r.NoError(l.ExpectToken(TokenOpenParen))

	err := l.ExpectToken(TokenComma)
	var sqlErr *SQLError
	r.ErrorAs(err, &sqlErr)
	r.Equal(ErrUnexpectedTokenKind, sqlErr.Kind)
	r.Equal(TokenComma, sqlErr.Expected)
	r.Equal(TokenCloseParen, sqlErr.Got.Kind)

	err = l.ExpectToken(TokenComma)
	r.ErrorAs(err, &sqlErr)
	r.Equal(ErrUnexpectedEnd, sqlErr.Kind)
}
