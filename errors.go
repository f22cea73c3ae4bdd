package linguaflow

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnknownWord is the sentinel a Resolver returns (wrapped) when it judges
// a word to be unrelated to arithmetic. Any other resolution error is treated
// as a failure of the resolution backend itself; both block parsing.
var ErrUnknownWord = errors.New("unknown operation word")

// InputError is an error with a source span. Every error produced while
// tokenizing, parsing, or evaluating an expression implements InputError.
type InputError interface {
	error
	// Span returns the start and end positions of the offending source text.
	Span() (start, end Position)
}

// LexError indicates an unrecognized or malformed character in the input.
type LexError struct {
	// Text is the offending character, or the literal scanned so far when a
	// token kind had already been decided.
	Text string
	// Kind is the kind of token being scanned, or "" if none was decided.
	Kind string
	// Start and End delimit the offending character.
	Start, End Position
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Start, "illegal character "+strconv.Quote(err.Text))
	}
	return errpos(err.Start, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Span() (Position, Position) { return err.Start, err.End }

// SyntaxError indicates a grammar violation: a missing operand, keyword, or
// bracket, or trailing tokens after a complete expression.
type SyntaxError struct {
	// Msg describes what the parser expected.
	Msg        string
	Start, End Position
}

func (err *SyntaxError) Error() string {
	return errpos(err.Start, err.Msg)
}

func (err *SyntaxError) Span() (Position, Position) { return err.Start, err.End }

// ResolveError indicates that a word token could not be turned into an
// operator, either because the resolver judged it unrelated to arithmetic or
// because the resolution backend failed. Unwrap exposes the cause; compare it
// against ErrUnknownWord to distinguish the two.
type ResolveError struct {
	// Word is the raw word as typed.
	Word       string
	Err        error
	Start, End Position
}

func (err *ResolveError) Error() string {
	return errpos(err.Start, "cannot resolve operation word "+strconv.Quote(err.Word)+": "+err.Err.Error())
}

func (err *ResolveError) Unwrap() error { return err.Err }

func (err *ResolveError) Span() (Position, Position) { return err.Start, err.End }

// RuntimeError indicates a failure during evaluation, positioned at the node
// that caused it. Division by zero is the only runtime failure of this
// language.
type RuntimeError struct {
	Msg        string
	Start, End Position
}

func (err *RuntimeError) Error() string {
	return errpos(err.Start, err.Msg)
}

func (err *RuntimeError) Span() (Position, Position) { return err.Start, err.End }

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*ResolveError)(nil)
	_ InputError = (*RuntimeError)(nil)
)

// errpos is a shortcut to create an error message with a position.
func errpos(pos Position, msg string) string {
	return pos.String() + ": " + msg
}

// Annotate renders an error against its original source line with a caret
// run under the offending span:
//
//	linguaflow:1:3: illegal character "@"
//	5 @ 3
//	  ^
//
// Errors without a span render as their plain message.
func Annotate(err error) string {
	var ie InputError
	if !errors.As(err, &ie) {
		return err.Error()
	}
	start, end := ie.Span()
	line := start.LineText()
	width := end.Col - start.Col
	if end.Line != start.Line || start.Col+width > len(line)+1 {
		width = len(line) + 1 - start.Col
	}
	if width < 1 {
		width = 1
	}
	var b strings.Builder
	b.WriteString(ie.Error())
	b.WriteByte('\n')
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", start.Col-1))
	b.WriteString(strings.Repeat("^", width))
	return b.String()
}
