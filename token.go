package linguaflow

import (
	"strconv"
	"strings"
)

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	// TokenInt is an integer literal.
	TokenInt
	// TokenFloat is a floating-point literal.
	TokenFloat
	// TokenPlus through TokenColon are the single-character symbols.
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenColon
	// TokenKeyword is one of the structural keywords: of, and, these, numbers.
	TokenKeyword
	// TokenWord is a run of letters that is not a keyword. Its operator
	// meaning is unknown until a Resolver is consulted.
	TokenWord
)

// String returns the name of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenInt:
		return "Int"
	case TokenFloat:
		return "Float"
	case TokenPlus:
		return "Plus"
	case TokenMinus:
		return "Minus"
	case TokenStar:
		return "Star"
	case TokenSlash:
		return "Slash"
	case TokenLParen:
		return "LParen"
	case TokenRParen:
		return "RParen"
	case TokenLBracket:
		return "LBracket"
	case TokenRBracket:
		return "RBracket"
	case TokenComma:
		return "Comma"
	case TokenColon:
		return "Colon"
	case TokenKeyword:
		return "Keyword"
	case TokenWord:
		return "Word"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// keywords are the structural words of the grammar. They are matched
// case-insensitively; every other word is a TokenWord.
var keywords = map[string]bool{
	"of":      true,
	"and":     true,
	"these":   true,
	"numbers": true,
}

// Token is a single lexeme with its source span. Tokens are created by
// Tokenize and never mutated afterwards.
type Token struct {
	Kind TokenKind
	// Text is the verbatim source text of the token. Word tokens keep the
	// case as typed, since the raw spelling is what a Resolver receives.
	Text string
	// Int and Float carry the decoded value for the respective literal kinds.
	Int   int64
	Float float64
	Start Position
	End   Position
}

func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String() + "@" + t.Start.String()
	}
	return t.Kind.String() + ":" + t.Text + "@" + t.Start.String()
}

// keywordIs reports whether t is the given structural keyword.
func (t Token) keywordIs(kw string) bool {
	return t.Kind == TokenKeyword && strings.EqualFold(t.Text, kw)
}

// describe names a token for syntax error messages.
func (t Token) describe() string {
	if t.Kind == TokenEOF {
		return "end of input"
	}
	return strconv.Quote(t.Text)
}
