package linguaflow

import (
	"strconv"
	"unicode"
)

// lexer scans a source text left to right with a single Position cursor.
type lexer struct {
	src []rune
	pos Position
}

// Tokenize converts a source text into its token sequence. The returned
// sequence always ends with exactly one EOF token. On the first unrecognized
// or malformed character, scanning stops and a *LexError positioned at that
// character is returned.
func Tokenize(name, text string) ([]Token, error) {
	l := lexer{src: []rune(text), pos: StartPos(name, text)}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

// cur returns the rune under the cursor, or -1 at end of input.
func (l *lexer) cur() rune {
	if l.pos.Offset >= len(l.src) {
		return -1
	}
	return l.src[l.pos.Offset]
}

func (l *lexer) advance() {
	l.pos = l.pos.Advance(l.cur())
}

func (l *lexer) next() (Token, error) {
	for {
		r := l.cur()
		switch {
		case r == -1:
			return Token{Kind: TokenEOF, Start: l.pos, End: l.pos}, nil
		case unicode.IsSpace(r):
			l.advance()
			continue
		case r >= '0' && r <= '9':
			return l.scanNumber()
		case unicode.IsLetter(r):
			return l.scanWord(), nil
		}
		start := l.pos
		l.advance()
		tok := Token{Text: string(r), Start: start, End: l.pos}
		switch r {
		case '+':
			tok.Kind = TokenPlus
		case '-':
			tok.Kind = TokenMinus
		case '*':
			tok.Kind = TokenStar
		case '/':
			tok.Kind = TokenSlash
		case '(':
			tok.Kind = TokenLParen
		case ')':
			tok.Kind = TokenRParen
		case '[':
			tok.Kind = TokenLBracket
		case ']':
			tok.Kind = TokenRBracket
		case ',':
			tok.Kind = TokenComma
		case ':':
			tok.Kind = TokenColon
		default:
			return Token{}, &LexError{Text: string(r), Start: start, End: l.pos}
		}
		return tok, nil
	}
}

// scanNumber scans an integer or float literal: digits with at most one dot.
// A second dot inside the same literal is a lexical error at that character.
func (l *lexer) scanNumber() (Token, error) {
	start := l.pos
	dot := false
	for {
		r := l.cur()
		if r == '.' {
			if dot {
				bad := l.pos
				l.advance()
				return Token{}, &LexError{Text: l.text(start), Kind: "number", Start: bad, End: l.pos}
			}
			dot = true
			l.advance()
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		l.advance()
	}
	tok := Token{Text: l.text(start), Start: start, End: l.pos}
	if dot {
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return Token{}, &LexError{Text: tok.Text, Kind: "number", Start: start, End: l.pos}
		}
		tok.Kind = TokenFloat
		tok.Float = f
	} else {
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return Token{}, &LexError{Text: tok.Text, Kind: "number", Start: start, End: l.pos}
		}
		tok.Kind = TokenInt
		tok.Int = n
	}
	return tok, nil
}

// scanWord scans a maximal run of letters and classifies it as a structural
// keyword or a word operator.
func (l *lexer) scanWord() Token {
	start := l.pos
	for unicode.IsLetter(l.cur()) {
		l.advance()
	}
	tok := Token{Text: l.text(start), Start: start, End: l.pos}
	if keywords[lower(tok.Text)] {
		tok.Kind = TokenKeyword
	} else {
		tok.Kind = TokenWord
	}
	return tok
}

func (l *lexer) text(from Position) string {
	return string(l.src[from.Offset:l.pos.Offset])
}

// lower is an ASCII-only lowercase; keywords contain only ASCII letters.
func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
