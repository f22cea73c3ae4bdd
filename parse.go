package linguaflow

// The grammar, with alternatives tried in order:
//
//	expr        := term ( (PLUS|MINUS|word_op) term )*
//	term        := factor ( (STAR|SLASH|word_op) factor )*
//	factor      := (PLUS|MINUS) factor | atom
//	atom        := NUMBER
//	             | LPAREN expr RPAREN
//	             | word_op "these" "numbers" ":" "[" NUMBER (","? NUMBER)* "]"
//	             | word_op "of" NUMBER "and" NUMBER
//
// A word_op is resolved to one of + - * / by the injected Resolver the moment
// the parser meets it. Precedence is unary > */ > +-, the same whether the
// operator was written as a symbol or a word; the list and "of" forms are
// atoms, so they compose with surrounding operators like any parenthesized
// value.

// parser maintains a single read cursor over an immutable token sequence.
type parser struct {
	toks     []Token
	pos      int
	resolver Resolver
	// resolved memoizes operator resolutions by token index, so a word
	// examined at the term level and again at the expr level costs one
	// resolver call.
	resolved map[int]Op
}

// Parse parses a token sequence into an expression, consulting resolver for
// every word token found where an operator is legal. The sequence must be one
// produced by Tokenize; the whole input up to EOF must form one expression.
func Parse(toks []Token, resolver Resolver) (*Expr, error) {
	p := parser{toks: toks, resolver: resolver, resolved: make(map[int]Op)}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.cur(); tok.Kind != TokenEOF {
		return nil, &SyntaxError{Msg: "unexpected token " + tok.describe() + " after expression", Start: tok.Start, End: tok.End}
	}
	return &Expr{n: n}, nil
}

// ParseString tokenizes and parses a source text in one step.
func ParseString(name, text string, resolver Resolver) (*Expr, error) {
	toks, err := Tokenize(name, text)
	if err != nil {
		return nil, err
	}
	return Parse(toks, resolver)
}

func (p *parser) cur() Token {
	return p.toks[p.pos]
}

// peek returns the token at offset from the cursor, or the EOF token when the
// offset runs past the end.
func (p *parser) peek(offset int) Token {
	if i := p.pos + offset; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) advance() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
}

// resolveWord resolves the word token at index i through the Resolver,
// memoizing the result for the duration of this parse.
func (p *parser) resolveWord(i int) (Op, error) {
	if op, ok := p.resolved[i]; ok {
		return op, nil
	}
	tok := p.toks[i]
	op, err := p.resolver.Resolve(tok.Text)
	if err != nil {
		return 0, &ResolveError{Word: tok.Text, Err: err, Start: tok.Start, End: tok.End}
	}
	p.resolved[i] = op
	return op, nil
}

func (p *parser) expr() (*node, error) {
	return p.binChain((*parser).term, OpAdd, OpSub)
}

func (p *parser) term() (*node, error) {
	return p.binChain((*parser).factor, OpMul, OpDiv)
}

// binChain parses a left fold of operand separated by the given operators.
// Symbolic and resolved word operators are interchangeable; an operator
// outside ops is left unconsumed for the enclosing level.
func (p *parser) binChain(operand func(*parser) (*node, error), ops ...Op) (*node, error) {
	left, err := operand(p)
	if err != nil {
		return nil, err
	}
	for {
		tok := p.cur()
		var op Op
		switch tok.Kind {
		case TokenPlus:
			op = OpAdd
		case TokenMinus:
			op = OpSub
		case TokenStar:
			op = OpMul
		case TokenSlash:
			op = OpDiv
		case TokenWord:
			op, err = p.resolveWord(p.pos)
			if err != nil {
				return nil, err
			}
		default:
			return left, nil
		}
		if op != ops[0] && op != ops[1] {
			// Binds at a different precedence level.
			return left, nil
		}
		p.advance()
		right, err := operand(p)
		if err != nil {
			return nil, err
		}
		left = &node{kind: nodeBin, op: op, left: left, right: right, start: left.start, end: right.end}
	}
}

func (p *parser) factor() (*node, error) {
	tok := p.cur()
	switch tok.Kind {
	case TokenPlus, TokenMinus:
		op := OpAdd
		if tok.Kind == TokenMinus {
			op = OpSub
		}
		p.advance()
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeUnary, op: op, left: operand, start: tok.Start, end: operand.end}, nil
	default:
		return p.atom()
	}
}

func (p *parser) atom() (*node, error) {
	tok := p.cur()
	switch tok.Kind {
	case TokenInt, TokenFloat:
		p.advance()
		return numNode(tok), nil
	case TokenLParen:
		p.advance()
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		end := p.cur()
		if end.Kind != TokenRParen {
			return nil, p.expected("')'")
		}
		p.advance()
		return n, nil
	case TokenWord:
		switch {
		case p.peek(1).keywordIs("these"):
			return p.functionalForm()
		case p.peek(1).keywordIs("of"):
			return p.naturalForm()
		}
	}
	return nil, p.expected("a number, '(', or an operation phrase")
}

// functionalForm parses: word_op "these" "numbers" ":" "[" numbers "]".
// The bracketed list must hold at least one number; commas are optional.
func (p *parser) functionalForm() (*node, error) {
	word := p.cur()
	op, err := p.resolveWord(p.pos)
	if err != nil {
		return nil, err
	}
	p.advance()
	if err := p.expectKeyword("these"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("numbers"); err != nil {
		return nil, err
	}
	if err := p.expect(TokenColon, "':'"); err != nil {
		return nil, err
	}
	if err := p.expect(TokenLBracket, "'['"); err != nil {
		return nil, err
	}
	var elems []*node
	for {
		tok := p.cur()
		if tok.Kind != TokenInt && tok.Kind != TokenFloat {
			break
		}
		elems = append(elems, numNode(tok))
		p.advance()
		if p.cur().Kind == TokenComma {
			p.advance()
		}
	}
	if len(elems) == 0 {
		return nil, p.expected("a number")
	}
	end := p.cur()
	if end.Kind != TokenRBracket {
		return nil, p.expected("']'")
	}
	p.advance()
	return &node{kind: nodeList, op: op, list: elems, start: word.Start, end: end.End}, nil
}

// naturalForm parses: word_op "of" NUMBER "and" NUMBER.
func (p *parser) naturalForm() (*node, error) {
	word := p.cur()
	op, err := p.resolveWord(p.pos)
	if err != nil {
		return nil, err
	}
	p.advance()
	if err := p.expectKeyword("of"); err != nil {
		return nil, err
	}
	left, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("and"); err != nil {
		return nil, err
	}
	right, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeBin, op: op, left: left, right: right, start: word.Start, end: right.end}, nil
}

func (p *parser) expect(kind TokenKind, want string) error {
	if p.cur().Kind != kind {
		return p.expected(want)
	}
	p.advance()
	return nil
}

func (p *parser) expectKeyword(kw string) error {
	if !p.cur().keywordIs(kw) {
		return p.expected("'" + kw + "'")
	}
	p.advance()
	return nil
}

func (p *parser) expectNumber() (*node, error) {
	tok := p.cur()
	if tok.Kind != TokenInt && tok.Kind != TokenFloat {
		return nil, p.expected("a number")
	}
	p.advance()
	return numNode(tok), nil
}

// expected builds a syntax error at the current token, or at the EOF position
// when the input ran out.
func (p *parser) expected(want string) error {
	tok := p.cur()
	return &SyntaxError{Msg: "expected " + want + ", found " + tok.describe(), Start: tok.Start, End: tok.End}
}

func numNode(tok Token) *node {
	return &node{
		kind:  nodeNum,
		ival:  tok.Int,
		fval:  tok.Float,
		float: tok.Kind == TokenFloat,
		start: tok.Start,
		end:   tok.End,
	}
}
