package syntax

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// TokenSource yields tokens one at a time and keeps yielding an EndOfFileToken once the input is exhausted.
type TokenSource interface {
	NextToken() Token
}

// Lexer turns source text into tokens. Whitespace and unrecognized characters are
// returned as WhitespaceToken and BadToken; it is up to the consumer to skip them.
type Lexer struct {
	source      string
	index       int
	diagnostics []string
}

var _ TokenSource = (*Lexer)(nil)

func NewLexer(source string) *Lexer {
	return &Lexer{source: source}
}

// Diagnostics returns the problems found so far, in source order.
func (l *Lexer) Diagnostics() []string {
	return l.diagnostics
}

func (l *Lexer) NextToken() Token {
	if l.index >= len(l.source) {
		return NewToken(EndOfFileToken, len(l.source), "", nil)
	}

	begin := l.index
	switch c := l.source[l.index]; c {
	case ' ', '\t', '\n', '\r':
		for l.index < len(l.source) && isSpace(l.source[l.index]) {
			l.index++
		}
		return l.emit(WhitespaceToken, begin, nil)
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return l.number()
	case '+':
		l.index++
		return l.emit(PlusToken, begin, nil)
	case '-':
		l.index++
		return l.emit(MinusToken, begin, nil)
	case '*':
		l.index++
		return l.emit(StarToken, begin, nil)
	case '/':
		l.index++
		return l.emit(SlashToken, begin, nil)
	case '(':
		l.index++
		return l.emit(OpenParenthesisToken, begin, nil)
	case ')':
		l.index++
		return l.emit(CloseParenthesisToken, begin, nil)
	case '!':
		if l.peek(1) == '=' {
			l.index += 2
			return l.emit(BangEqualsToken, begin, nil)
		}
		l.index++
		return l.emit(BangToken, begin, nil)
	case '=':
		if l.peek(1) == '=' {
			l.index += 2
			return l.emit(EqualsEqualsToken, begin, nil)
		}
	case '&':
		if l.peek(1) == '&' {
			l.index += 2
			return l.emit(AmpersandAmpersandToken, begin, nil)
		}
	case '|':
		if l.peek(1) == '|' {
			l.index += 2
			return l.emit(PipePipeToken, begin, nil)
		}
	default:
		if isLetter(c) {
			return l.word()
		}
	}

	r, size := utf8.DecodeRuneInString(l.source[l.index:])
	l.index += size
	l.diagnostics = append(l.diagnostics, fmt.Sprintf("bad character input: %q at %d", r, begin))
	return l.emit(BadToken, begin, nil)
}

func (l *Lexer) number() Token {
	begin := l.index
	for l.index < len(l.source) && isDigit(l.source[l.index]) {
		l.index++
	}

	text := l.source[begin:l.index]
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.diagnostics = append(l.diagnostics, fmt.Sprintf("invalid number %s at %d: %v", text, begin, err))
		return l.emit(NumberToken, begin, nil)
	}
	return l.emit(NumberToken, begin, v)
}

func (l *Lexer) word() Token {
	begin := l.index
	for l.index < len(l.source) && (isLetter(l.source[l.index]) || isDigit(l.source[l.index])) {
		l.index++
	}

	switch l.source[begin:l.index] {
	case "true":
		return l.emit(TrueKeyword, begin, true)
	case "false":
		return l.emit(FalseKeyword, begin, false)
	default:
		return l.emit(IdentifierToken, begin, nil)
	}
}

func (l *Lexer) peek(offset int) byte {
	if i := l.index + offset; i < len(l.source) {
		return l.source[i]
	}
	return 0
}

func (l *Lexer) emit(kind Kind, begin int, value any) Token {
	return NewToken(kind, begin, l.source[begin:l.index], value)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}
