package lexer

import (
	"fmt"
	"strings"

	radix "github.com/armon/go-radix"
)

// Kind is the kind of token produced by the lexer.
type Kind int

const (
	TokenEOF Kind = iota

	TokenComma
	TokenSemicolon
	TokenOpenParen
	TokenCloseParen
	TokenAsterisk

	TokenPlus
	TokenMinus
	TokenSlash

	// TokenEquals is a bare "="; it lexes but is not a valid operator.
	TokenEquals
	TokenDoubleEquals
	TokenNotEq
	TokenLt
	TokenLte
	TokenGt
	TokenGte

	TokenIdentifier
	TokenString
	TokenInteger
	TokenFloat

	TokenSelect
	TokenFrom
	TokenWhere
	TokenOrder
	TokenBy
	TokenAsc
	TokenDesc
	TokenTrue
	TokenFalse
	TokenNull
	TokenAnd
	TokenOr
	TokenNot
	TokenLimit
	TokenOffset

	TokenInsert
	TokenInto
	TokenValues

	TokenCreate
	TokenTable
	TokenIntType
	TokenFloatType
	TokenTextType
	TokenPrimary
	TokenKey
	TokenNullable

	TokenCount
	TokenSum
	TokenAvg
	TokenStddev
	TokenMin
	TokenMax
)

var keywords = map[string]Kind{
	"select":   TokenSelect,
	"from":     TokenFrom,
	"where":    TokenWhere,
	"order":    TokenOrder,
	"by":       TokenBy,
	"asc":      TokenAsc,
	"desc":     TokenDesc,
	"true":     TokenTrue,
	"false":    TokenFalse,
	"null":     TokenNull,
	"and":      TokenAnd,
	"or":       TokenOr,
	"not":      TokenNot,
	"limit":    TokenLimit,
	"offset":   TokenOffset,
	"insert":   TokenInsert,
	"into":     TokenInto,
	"values":   TokenValues,
	"create":   TokenCreate,
	"table":    TokenTable,
	"int":      TokenIntType,
	"float":    TokenFloatType,
	"text":     TokenTextType,
	"primary":  TokenPrimary,
	"key":      TokenKey,
	"nullable": TokenNullable,
	"count":    TokenCount,
	"sum":      TokenSum,
	"avg":      TokenAvg,
	"stddev":   TokenStddev,
	"min":      TokenMin,
	"max":      TokenMax,
}

// keywordTree holds every reserved word keyed by its lowercase spelling.
var keywordTree = func() *radix.Tree {
	t := radix.New()
	for word, kind := range keywords {
		t.Insert(word, kind)
	}
	return t
}()

// keywordKind classifies word as a keyword, case-insensitively. Identifiers
// miss the tree and return false.
func keywordKind(word string) (Kind, bool) {
	v, ok := keywordTree.Get(strings.ToLower(word))
	if !ok {
		return 0, false
	}
	return v.(Kind), true
}

// Token is one lexical unit. Position is the token's UTF-8 byte offset in
// the source. For string tokens Text is the literal without its quotes.
type Token struct {
	Kind     Kind
	Text     string
	Position int
}

func (k Kind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenComma:
		return ","
	case TokenSemicolon:
		return ";"
	case TokenOpenParen:
		return "("
	case TokenCloseParen:
		return ")"
	case TokenAsterisk:
		return "*"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenSlash:
		return "/"
	case TokenEquals:
		return "="
	case TokenDoubleEquals:
		return "=="
	case TokenNotEq:
		return "!="
	case TokenLt:
		return "<"
	case TokenLte:
		return "<="
	case TokenGt:
		return ">"
	case TokenGte:
		return ">="
	case TokenIdentifier:
		return "identifier"
	case TokenString:
		return "string"
	case TokenInteger:
		return "integer"
	case TokenFloat:
		return "float"
	default:
		for text, kind := range keywords {
			if kind == k {
				return strings.ToUpper(text)
			}
		}
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIdentifier:
		return fmt.Sprintf("IDENT ('%s')", t.Text)
	case TokenString:
		return fmt.Sprintf("STRING ('%s')", t.Text)
	case TokenInteger:
		return fmt.Sprintf("INTEGER (%s)", t.Text)
	case TokenFloat:
		return fmt.Sprintf("FLOAT (%s)", t.Text)
	default:
		return t.Kind.String()
	}
}

// IsClauseKeyword reports whether k is one of the SQL-clause keywords that
// halt the expression infix loop.
func IsClauseKeyword(k Kind) bool {
	switch k {
	case TokenFrom, TokenWhere, TokenOrder, TokenAsc, TokenDesc, TokenLimit, TokenOffset:
		return true
	default:
		return false
	}
}

// IsAggregateName reports whether k names a recognized aggregate function.
func IsAggregateName(k Kind) bool {
	switch k {
	case TokenCount, TokenSum, TokenAvg, TokenStddev, TokenMin, TokenMax:
		return true
	default:
		return false
	}
}
