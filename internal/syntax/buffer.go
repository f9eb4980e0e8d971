package syntax

import "github.com/samber/lo"

// TokenBuffer is the finalized token sequence a parser walks. It always ends with
// exactly one EndOfFileToken and is never modified after construction.
type TokenBuffer struct {
	tokens      []Token
	diagnostics []string
}

// NewTokenBuffer drains src until it yields an EndOfFileToken. Whitespace and bad
// tokens are dropped; if src reports diagnostics, they are kept with the buffer.
func NewTokenBuffer(src TokenSource) *TokenBuffer {
	var tokens []Token
	for {
		tok := src.NextToken()
		if isTrivia(tok.Kind()) {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind() == EndOfFileToken {
			break
		}
	}

	b := &TokenBuffer{tokens: tokens}
	if d, ok := src.(interface{ Diagnostics() []string }); ok {
		b.diagnostics = append([]string(nil), d.Diagnostics()...)
	}
	return b
}

// NewTokenBufferFromTokens builds a buffer from already materialized tokens. Tokens
// after the first EndOfFileToken are ignored, and one is appended if none is present.
func NewTokenBufferFromTokens(tokens []Token) *TokenBuffer {
	tokens = lo.Filter(tokens, func(tok Token, _ int) bool {
		return !isTrivia(tok.Kind())
	})

	for i, tok := range tokens {
		if tok.Kind() == EndOfFileToken {
			return &TokenBuffer{tokens: tokens[: i+1 : i+1]}
		}
	}

	pos := 0
	if len(tokens) != 0 {
		_, pos = tokens[len(tokens)-1].Span()
	}
	return &TokenBuffer{tokens: append(tokens, NewToken(EndOfFileToken, pos, "", nil))}
}

func isTrivia(kind Kind) bool {
	return kind == WhitespaceToken || kind == BadToken
}

func (b *TokenBuffer) Len() int {
	return len(b.tokens)
}

// At returns the token at index i, clamped to the first token and the EndOfFileToken.
func (b *TokenBuffer) At(i int) Token {
	if i < 0 {
		return b.tokens[0]
	}
	if i >= len(b.tokens) {
		return b.tokens[len(b.tokens)-1]
	}
	return b.tokens[i]
}

// Tokens returns a copy of the buffered tokens.
func (b *TokenBuffer) Tokens() []Token {
	return append([]Token(nil), b.tokens...)
}

// Diagnostics returns the diagnostics reported by the token source.
func (b *TokenBuffer) Diagnostics() []string {
	return append([]string(nil), b.diagnostics...)
}

// Cursor returns a cursor positioned at the first token.
func (b *TokenBuffer) Cursor() Cursor {
	return Cursor{buf: b}
}

// Cursor is a read position over a TokenBuffer. The zero position is the first token.
type Cursor struct {
	buf      *TokenBuffer
	position int
}

func (c *Cursor) Position() int {
	return c.position
}

// Peek returns the token offset positions ahead, clamped to the buffer's bounds.
func (c *Cursor) Peek(offset int) Token {
	return c.buf.At(c.position + offset)
}

func (c *Cursor) Current() Token {
	return c.Peek(0)
}

// Advance returns the current token and moves past it. It never moves past the EndOfFileToken.
func (c *Cursor) Advance() Token {
	current := c.Current()
	if c.position < c.buf.Len()-1 {
		c.position++
	}
	return current
}
