package linguaflow

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestWordTableResolve(t *testing.T) {
	t.Parallel()
	table := DefaultWords()
	cases := []struct {
		word string
		want Op
	}{
		{"sum", OpAdd},
		{"SUM", OpAdd},
		{"Accumulate", OpAdd},
		{"subtract", OpSub},
		{"times", OpMul},
		{"quotient", OpDiv},
	}
	for _, c := range cases {
		op, err := table.Resolve(c.word)
		assert.NoError(t, err)
		assert.Equal(t, c.want, op, "word %q", c.word)
	}

	_, err := table.Resolve("gibberish")
	assert.True(t, errors.Is(err, ErrUnknownWord))
}

func TestParseOp(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"+", "-", "*", "/", " + "} {
		op, err := ParseOp(s)
		assert.NoError(t, err)
		assert.True(t, op.valid())
	}
	for _, s := range []string{"", "x", "++", "add"} {
		_, err := ParseOp(s)
		assert.Error(t, err, "symbol %q", s)
	}
}

// flakyResolver fails a fixed number of times before answering.
type flakyResolver struct {
	failures int
	calls    int
}

func (r *flakyResolver) Resolve(word string) (Op, error) {
	r.calls++
	if r.calls <= r.failures {
		return 0, errors.New("backend unavailable")
	}
	return OpAdd, nil
}

func TestCachedResolver(t *testing.T) {
	t.Parallel()
	backend := &countingResolver{table: DefaultWords()}
	r := NewCachedResolver(backend)

	op, err := r.Resolve("sum")
	assert.NoError(t, err)
	assert.Equal(t, OpAdd, op)
	op, err = r.Resolve("sum")
	assert.NoError(t, err)
	assert.Equal(t, OpAdd, op)
	assert.Equal(t, 1, backend.calls)

	// The cache keys on the raw spelling; a different case is a different
	// entry, since the backend may be case-sensitive.
	_, err = r.Resolve("SUM")
	assert.NoError(t, err)
	assert.Equal(t, 2, backend.calls)
}

func TestCachedResolverDoesNotCacheFailures(t *testing.T) {
	t.Parallel()
	backend := &flakyResolver{failures: 1}
	r := NewCachedResolver(backend)

	_, err := r.Resolve("sum")
	assert.Error(t, err)

	op, err := r.Resolve("sum")
	assert.NoError(t, err)
	assert.Equal(t, OpAdd, op)
	assert.Equal(t, 2, backend.calls)

	_, err = r.Resolve("sum")
	assert.NoError(t, err)
	assert.Equal(t, 2, backend.calls)
}
