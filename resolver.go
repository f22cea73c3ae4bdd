package linguaflow

import (
	"fmt"
	"strings"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Op is one of the four arithmetic operators.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
)

func (op Op) String() string { return string(byte(op)) }

// valid reports whether op is one of the four operators.
func (op Op) valid() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// Resolver maps a word operator's raw text to a concrete operator. The call
// is synchronous from the parser's point of view; implementations may do
// network I/O internally. A word the resolver judges non-arithmetic must
// return an error wrapping ErrUnknownWord; any other error is treated as a
// backend failure. Both block parsing identically.
type Resolver interface {
	Resolve(word string) (Op, error)
}

// SentenceConverter turns a whole natural-language question into a symbolic
// expression string. It is consumed by the REPL before input reaches the
// expression pipeline; the core never calls it.
type SentenceConverter interface {
	Convert(sentence string) (string, error)
}

// WordTable is a deterministic Resolver backed by a synonym table. Lookups
// are case-insensitive. It serves tests and the offline REPL mode.
type WordTable map[string]Op

func (t WordTable) Resolve(word string) (Op, error) {
	if op, ok := t[lower(word)]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWord, word)
}

// DefaultWords returns the built-in synonym table.
func DefaultWords() WordTable {
	return WordTable{
		"add": OpAdd, "plus": OpAdd, "sum": OpAdd, "total": OpAdd,
		"accumulate": OpAdd, "combine": OpAdd, "aggregate": OpAdd,
		"subtract": OpSub, "minus": OpSub, "difference": OpSub, "remove": OpSub,
		"multiply": OpMul, "times": OpMul, "product": OpMul,
		"divide": OpDiv, "split": OpDiv, "quotient": OpDiv,
	}
}

// ParseOp converts an operator symbol such as "+" to an Op. It accepts the
// form word tables and configuration files use.
func ParseOp(s string) (Op, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 && Op(s[0]).valid() {
		return Op(s[0]), nil
	}
	return 0, fmt.Errorf("invalid operator symbol %q", s)
}

// CachedResolver wraps a Resolver and remembers successful resolutions, keyed
// on the exact raw word text. Failures are not cached, so a transient backend
// failure does not poison a word. The cache is safe for concurrent readers.
type CachedResolver struct {
	backend Resolver
	words   cmap.ConcurrentMap[string, Op]
}

// NewCachedResolver wraps backend with a resolution cache.
func NewCachedResolver(backend Resolver) *CachedResolver {
	return &CachedResolver{backend: backend, words: cmap.New[Op]()}
}

func (r *CachedResolver) Resolve(word string) (Op, error) {
	if op, ok := r.words.Get(word); ok {
		return op, nil
	}
	op, err := r.backend.Resolve(word)
	if err != nil {
		return 0, err
	}
	r.words.Set(word, op)
	return op, nil
}

var (
	_ Resolver = WordTable(nil)
	_ Resolver = (*CachedResolver)(nil)
)
