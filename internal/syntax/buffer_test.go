package syntax_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/exprtree/internal/syntax"
)

func kinds(tokens []syntax.Token) []syntax.Kind {
	ks := make([]syntax.Kind, len(tokens))
	for i, tok := range tokens {
		ks[i] = tok.Kind()
	}
	return ks
}

func TestNewTokenBufferFiltersTrivia(t *testing.T) {
	t.Parallel()

	buf := syntax.NewTokenBuffer(syntax.NewLexer(" 1 +\t$ 2 "))
	expected := []syntax.Kind{syntax.NumberToken, syntax.PlusToken, syntax.NumberToken, syntax.EndOfFileToken}
	if diff := cmp.Diff(expected, kinds(buf.Tokens())); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"bad character input: '$' at 5"}, buf.Diagnostics()); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

type sliceSource struct {
	tokens []syntax.Token
	calls  int
}

func (s *sliceSource) NextToken() syntax.Token {
	s.calls++
	if len(s.tokens) == 0 {
		return syntax.NewToken(syntax.EndOfFileToken, 0, "", nil)
	}
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	return tok
}

func TestNewTokenBufferStopsAtEndOfFile(t *testing.T) {
	t.Parallel()

	src := &sliceSource{tokens: []syntax.Token{
		syntax.NewToken(syntax.NumberToken, 0, "1", int64(1)),
		syntax.NewToken(syntax.EndOfFileToken, 1, "", nil),
		syntax.NewToken(syntax.NumberToken, 2, "2", int64(2)),
	}}
	buf := syntax.NewTokenBuffer(src)
	if src.calls != 2 {
		t.Errorf("expect to 2 calls but got %d", src.calls)
	}
	if buf.Len() != 2 {
		t.Errorf("expect to 2 tokens but got %d", buf.Len())
	}
	if len(buf.Diagnostics()) != 0 {
		t.Errorf("unexpected diagnostics: %v", buf.Diagnostics())
	}
}

func TestNewTokenBufferFromTokens(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name     string
		tokens   []syntax.Token
		expected []syntax.Token
	}{
		{
			name:     "empty",
			tokens:   nil,
			expected: []syntax.Token{syntax.NewToken(syntax.EndOfFileToken, 0, "", nil)},
		},
		{
			name: "missing end of file",
			tokens: []syntax.Token{
				syntax.NewToken(syntax.NumberToken, 0, "10", int64(10)),
				syntax.NewToken(syntax.WhitespaceToken, 2, " ", nil),
			},
			expected: []syntax.Token{
				syntax.NewToken(syntax.NumberToken, 0, "10", int64(10)),
				syntax.NewToken(syntax.EndOfFileToken, 2, "", nil),
			},
		},
		{
			name: "trailing tokens",
			tokens: []syntax.Token{
				syntax.NewToken(syntax.BadToken, 0, "?", nil),
				syntax.NewToken(syntax.EndOfFileToken, 1, "", nil),
				syntax.NewToken(syntax.NumberToken, 2, "1", int64(1)),
			},
			expected: []syntax.Token{
				syntax.NewToken(syntax.EndOfFileToken, 1, "", nil),
			},
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := syntax.NewTokenBufferFromTokens(tt.tokens)
			if diff := cmp.Diff(tt.expected, buf.Tokens(), cmp.AllowUnexported(syntax.Token{})); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCursor(t *testing.T) {
	t.Parallel()

	buf := syntax.NewTokenBuffer(syntax.NewLexer("1 + 2"))
	c := buf.Cursor()

	for offset, expected := range []syntax.Kind{syntax.NumberToken, syntax.PlusToken, syntax.NumberToken, syntax.EndOfFileToken, syntax.EndOfFileToken} {
		if got := c.Peek(offset).Kind(); got != expected {
			t.Errorf("Peek(%d): expect to %s but got %s", offset, expected, got)
		}
	}
	if got := c.Peek(1000).Kind(); got != syntax.EndOfFileToken {
		t.Errorf("Peek(1000): expect to EndOfFileToken but got %s", got)
	}
	if got := c.Peek(-5).Kind(); got != syntax.NumberToken {
		t.Errorf("Peek(-5): expect to NumberToken but got %s", got)
	}

	for i, expected := range []syntax.Kind{syntax.NumberToken, syntax.PlusToken, syntax.NumberToken} {
		if got := c.Advance().Kind(); got != expected {
			t.Errorf("Advance() #%d: expect to %s but got %s", i, expected, got)
		}
		if c.Position() != i+1 {
			t.Errorf("Advance() #%d: expect position %d but got %d", i, i+1, c.Position())
		}
	}

	for i := 0; i < 3; i++ {
		if got := c.Advance().Kind(); got != syntax.EndOfFileToken {
			t.Errorf("expect to EndOfFileToken but got %s", got)
		}
		if c.Position() != 3 {
			t.Errorf("expect position 3 but got %d", c.Position())
		}
	}

	// cursors are independent values
	if other := buf.Cursor(); other.Position() != 0 || other.Current().Kind() != syntax.NumberToken {
		t.Errorf("fresh cursor is not at the start: %d", other.Position())
	}
}
