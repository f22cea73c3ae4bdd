package linguaflow

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestAnnotate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "lex",
			src:  "5 @ 3",
			want: "TestAnnotate/lex:1:3: illegal character \"@\"\n" +
				"5 @ 3\n" +
				"  ^",
		},
		{
			name: "syntax-eof",
			src:  "5 +",
			want: "TestAnnotate/syntax-eof:1:4: expected a number, '(', or an operation phrase, found end of input\n" +
				"5 +\n" +
				"   ^",
		},
		{
			name: "runtime-span",
			src:  "10 / 0",
			want: "TestAnnotate/runtime-span:1:6: division by zero\n" +
				"10 / 0\n" +
				"     ^",
		},
		{
			name: "wide-span",
			src:  "5 frobnicate 3",
			want: "TestAnnotate/wide-span:1:3: cannot resolve operation word \"frobnicate\": unknown operation word: \"frobnicate\"\n" +
				"5 frobnicate 3\n" +
				"  ^^^^^^^^^^",
		},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			_, err := Run(t.Name(), c.src, DefaultWords())
			assert.Error(t, err)
			assert.Equal(t, c.want, Annotate(err))
		})
	}
}

func TestAnnotatePlainError(t *testing.T) {
	t.Parallel()
	err := errors.New("no span here")
	assert.Equal(t, "no span here", Annotate(err))
}

func TestAnnotateSecondLine(t *testing.T) {
	t.Parallel()
	_, err := Run(t.Name(), "1 +\n2 @", DefaultWords())
	out := Annotate(err)
	lines := strings.Split(out, "\n")
	assert.Equal(t, 3, len(lines))
	assert.Equal(t, "2 @", lines[1])
	assert.Equal(t, "  ^", lines[2])
}
